// Package metrics defines and registers all custom Prometheus metrics for the
// consulting API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "consulting"

// ── Consultation metrics ──────────────────────────────────────────────────────

// SubmissionsTotal counts consultation requests accepted through the public
// intake endpoint.
// Label:
//   - service: the requested service line (e.g. "strategic", "digital")
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of consultation requests submitted, by service.",
	},
	[]string{"service"},
)

// StatusUpdatesTotal counts status changes applied by staff.
// Label:
//   - status: the new status (e.g. "contacted", "completed")
var StatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_updates_total",
		Help:      "Total number of consultation status changes, by new status.",
	},
	[]string{"status"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSent counts delivery attempts that reached a channel.
// Labels:
//   - channel: "email" or "whatsapp"
//   - result: "delivered" or "failed"
var NotificationsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notification sends, by channel and result.",
	},
	[]string{"channel", "result"},
)

// NotificationsDropped counts notifications discarded because the dispatch
// buffer was full.
var NotificationsDropped = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped due to a full dispatch buffer.",
	},
)

// ── Rate limit metrics ────────────────────────────────────────────────────────

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
// Label:
//   - tier: "general", "auth", or "submission"
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter, by tier.",
	},
	[]string{"tier"},
)
