package ports

import (
	"context"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// DashboardOverview is the headline count block of the staff dashboard.
type DashboardOverview struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Contacted  int64 `json:"contacted"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
	Overdue    int64 `json:"overdue"`
	TotalUsers int64 `json:"totalUsers"`
}

// ServiceCount and PriorityCount are grouped-count rows for the dashboard.
type ServiceCount struct {
	Service domain.Service `json:"service"`
	Count   int64          `json:"count"`
}

type PriorityCount struct {
	Priority domain.Priority `json:"priority"`
	Count    int64           `json:"count"`
}

// DashboardStats aggregates the staff dashboard. Each block is computed by an
// independent query with no cross-query snapshot, so sub-counts may not sum
// exactly to Total under concurrent writes.
type DashboardStats struct {
	Overview     DashboardOverview      `json:"overview"`
	ByService    []ServiceCount         `json:"byService"`
	ByPriority   []PriorityCount        `json:"byPriority"`
	Recent       []*domain.Consultation `json:"recentConsultations"`
	MonthlyTrend []MonthCount           `json:"monthlyTrend"`
}

// UserStats is the admin-only account rollup.
type UserStats struct {
	Total  int64            `json:"total"`
	ByRole map[string]int64 `json:"byRole"`
}

// StatsService builds the reporting aggregations.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Users(ctx context.Context) (*UserStats, error)
}
