package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/addisco/consulting-api/internal/core/ports"
)

type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Dashboard returns the staff dashboard aggregations: headline counts,
// per-service and per-priority breakdowns, recent submissions, and the
// six-month trend.
//
// @Summary      Staff dashboard statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      403  {object}  map[string]string
// @Router       /api/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	stats, err := h.stats.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}

// Users returns the admin-only account rollup.
//
// @Summary      User account statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserStats
// @Failure      403  {object}  map[string]string
// @Router       /api/stats/users [get]
func (h *StatsHandler) Users(c echo.Context) error {
	stats, err := h.stats.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}
