// Package reporting computes the dashboard counters shown to admin and
// branch users.
package reporting

import (
	"context"
	"time"
)

// AdminStats is the platform-wide dashboard.
type AdminStats struct {
	ActiveEmployees int `json:"active_employees_count"`
	ActiveBranches  int `json:"active_branches_count"`
	PendingOrders   int `json:"pending_orders_count"`
}

// BranchStats is the dashboard for one branch. Pending orders only count
// deliveries due today or later; stale past-due orders stay out of the
// number.
type BranchStats struct {
	ActiveEmployees     int `json:"active_employees_count"`
	PendingOrders       int `json:"pending_orders_count"`
	TodaysPendingOrders int `json:"todays_pending_orders_count"`
}

type Repository interface {
	ActiveEmployeeCount(ctx context.Context, branchID string) (int, error)
	ActiveBranchCount(ctx context.Context) (int, error)
	PendingOrderCount(ctx context.Context, branchID string, dueFrom, dueOn *time.Time) (int, error)
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) AdminStats(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	var err error

	if stats.ActiveEmployees, err = s.repo.ActiveEmployeeCount(ctx, ""); err != nil {
		return AdminStats{}, err
	}
	if stats.ActiveBranches, err = s.repo.ActiveBranchCount(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.PendingOrders, err = s.repo.PendingOrderCount(ctx, "", nil, nil); err != nil {
		return AdminStats{}, err
	}
	return stats, nil
}

func (s *Service) BranchStats(ctx context.Context, branchID string) (BranchStats, error) {
	var stats BranchStats
	var err error

	today := s.today()
	if stats.ActiveEmployees, err = s.repo.ActiveEmployeeCount(ctx, branchID); err != nil {
		return BranchStats{}, err
	}
	if stats.PendingOrders, err = s.repo.PendingOrderCount(ctx, branchID, &today, nil); err != nil {
		return BranchStats{}, err
	}
	if stats.TodaysPendingOrders, err = s.repo.PendingOrderCount(ctx, branchID, nil, &today); err != nil {
		return BranchStats{}, err
	}
	return stats, nil
}

func (s *Service) today() time.Time {
	now := s.clock().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
