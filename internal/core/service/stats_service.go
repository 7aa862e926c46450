package service

import (
	"context"
	"sort"
	"time"

	"github.com/addisco/consulting-api/internal/core/domain"
	"github.com/addisco/consulting-api/internal/core/ports"
)

const recentConsultationsLimit = 5

// StatsService builds dashboard and user aggregations. Each count is an
// independent query; no snapshot spans them, so sub-counts may drift from the
// total under concurrent writes.
type StatsService struct {
	consultations ports.ConsultationRepository
	users         ports.UserRepository
}

func NewStatsService(consultations ports.ConsultationRepository, users ports.UserRepository) *StatsService {
	return &StatsService{consultations: consultations, users: users}
}

func (s *StatsService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	now := time.Now().UTC()

	total, err := s.consultations.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.consultations.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.consultations.CountOverdue(ctx, now.Add(-domain.OverdueAfter))
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	byService, err := s.consultations.CountByService(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.consultations.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.consultations.Recent(ctx, recentConsultationsLimit)
	if err != nil {
		return nil, err
	}

	trend, err := s.consultations.MonthlyTrend(ctx, now.AddDate(0, -6, 0))
	if err != nil {
		return nil, err
	}

	services := make([]ports.ServiceCount, 0, len(byService))
	for svc, count := range byService {
		services = append(services, ports.ServiceCount{Service: svc, Count: count})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Count > services[j].Count })

	priorities := make([]ports.PriorityCount, 0, len(byPriority))
	for _, p := range domain.Priorities {
		if count, ok := byPriority[p]; ok {
			priorities = append(priorities, ports.PriorityCount{Priority: p, Count: count})
		}
	}

	return &ports.DashboardStats{
		Overview: ports.DashboardOverview{
			Total:      total,
			Pending:    byStatus[domain.StatusPending],
			Contacted:  byStatus[domain.StatusContacted],
			InProgress: byStatus[domain.StatusInProgress],
			Completed:  byStatus[domain.StatusCompleted],
			Cancelled:  byStatus[domain.StatusCancelled],
			Overdue:    overdue,
			TotalUsers: totalUsers,
		},
		ByService:    services,
		ByPriority:   priorities,
		Recent:       recent,
		MonthlyTrend: trend,
	}, nil
}

func (s *StatsService) Users(ctx context.Context) (*ports.UserStats, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.UserStats{Total: total, ByRole: byRole}, nil
}
