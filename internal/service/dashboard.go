package service

import (
	"context"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type dashboardService struct {
	store repository.Store
	now   Clock
}

func NewDashboardService(store repository.Store, now Clock) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{store: store, now: now}
}

func (s *dashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	today := domain.DateOnly(s.now())
	startOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	ledger, err := s.store.Ledger().Summary(ctx, startOfMonth, today)
	if err != nil {
		return nil, err
	}

	totalMembers, err := s.store.Members().Count(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.store.Members().CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	last30, err := s.store.Lunches().CountBetween(ctx, today.AddDate(0, 0, -29), today)
	if err != nil {
		return nil, err
	}
	open, err := s.store.Lunches().CountOpen(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.store.Lunches().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		MonthlyBalanceCents: ledger.BalanceCents,
		MonthlyInflowCents:  ledger.InflowCents,
		MonthlyOutflowCents: ledger.OutflowCents,
		TotalMembers:        totalMembers,
		MembersByRole:       byRole,
		LunchesLast30Days:   last30,
		OpenLunches:         open,
		TotalLunches:        total,
	}, nil
}
