package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/addisco/consulting-api/internal/api/metrics"
)

// Rate limit tiers. General covers every request, auth covers login and
// register, submission covers the public intake endpoint.
const (
	TierGeneral    = "general"
	TierAuth       = "auth"
	TierSubmission = "submission"
)

var tierLimits = map[string]redis_rate.Limit{
	TierGeneral:    {Rate: 100, Period: 15 * time.Minute, Burst: 100},
	TierAuth:       {Rate: 5, Period: 15 * time.Minute, Burst: 5},
	TierSubmission: {Rate: 3, Period: time.Hour, Burst: 3},
}

// RateLimit returns a per-client-IP sliding window limiter for the given
// tier, backed by Redis. When Redis is unreachable it falls back to an
// in-process token bucket per key, so a Redis outage degrades accuracy
// instead of availability.
func RateLimit(rdb *redis.Client, tier string) echo.MiddlewareFunc {
	limit, ok := tierLimits[tier]
	if !ok {
		limit = tierLimits[TierGeneral]
		tier = TierGeneral
	}

	limiter := redis_rate.NewLimiter(rdb)
	fallback := newLocalLimiter(limit)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:" + tier + ":" + c.RealIP()

			res, err := limiter.Allow(c.Request().Context(), key, limit)
			if err != nil {
				if fallback.allow(key) {
					return next(c)
				}
				return tooManyRequests(c, tier, limit.Period)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if res.Allowed == 0 {
				retryAfter := int(res.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				return tooManyRequests(c, tier, limit.Period)
			}
			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context, tier string, _ time.Duration) error {
	metrics.RateLimitRejectionsTotal.WithLabelValues(tier).Inc()
	return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
}

// localLimiter is the in-process fallback used while Redis is down. Entries
// are pruned lazily when the map grows large.
type localLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries map[string]*localEntry
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	localEntryTTL   = 30 * time.Minute
	localPruneAbove = 10000
)

func newLocalLimiter(l redis_rate.Limit) *localLimiter {
	return &localLimiter{
		limit:   rate.Limit(float64(l.Rate) / l.Period.Seconds()),
		burst:   l.Burst,
		entries: make(map[string]*localEntry),
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now

	if len(l.entries) > localPruneAbove {
		for k, v := range l.entries {
			if now.Sub(v.lastSeen) > localEntryTTL {
				delete(l.entries, k)
			}
		}
	}
	return e.limiter.Allow()
}
