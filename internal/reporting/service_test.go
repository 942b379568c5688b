package reporting

import (
	"context"
	"testing"
	"time"
)

func TestAdminStatsCountPlatformWide(t *testing.T) {
	repo := NewMemoryRepo()
	repo.SetActiveBranches(3)
	repo.AddEmployee(MemoryEmployee{BranchID: "br-1", Active: true})
	repo.AddEmployee(MemoryEmployee{BranchID: "br-2", Active: true})
	repo.AddEmployee(MemoryEmployee{BranchID: "br-2", Active: false})
	repo.AddOrder(MemoryOrder{BranchID: "br-1", Pending: true, DeliveryDate: time.Now().AddDate(0, 0, -5)})
	repo.AddOrder(MemoryOrder{BranchID: "br-2", Pending: true, DeliveryDate: time.Now()})
	repo.AddOrder(MemoryOrder{BranchID: "br-2", Pending: false, DeliveryDate: time.Now()})

	stats, err := NewService(repo).AdminStats(context.Background())
	if err != nil {
		t.Fatalf("admin stats failed: %v", err)
	}
	if stats.ActiveEmployees != 2 || stats.ActiveBranches != 3 || stats.PendingOrders != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestBranchStatsScopeAndDueDates(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	repo.AddEmployee(MemoryEmployee{BranchID: "br-1", Active: true})
	repo.AddEmployee(MemoryEmployee{BranchID: "br-2", Active: true})

	// past due, today, future, other branch
	repo.AddOrder(MemoryOrder{BranchID: "br-1", Pending: true, DeliveryDate: now.AddDate(0, 0, -2)})
	repo.AddOrder(MemoryOrder{BranchID: "br-1", Pending: true, DeliveryDate: now})
	repo.AddOrder(MemoryOrder{BranchID: "br-1", Pending: true, DeliveryDate: now.AddDate(0, 0, 3)})
	repo.AddOrder(MemoryOrder{BranchID: "br-2", Pending: true, DeliveryDate: now})

	svc := NewService(repo)
	svc.clock = func() time.Time { return now }

	stats, err := svc.BranchStats(context.Background(), "br-1")
	if err != nil {
		t.Fatalf("branch stats failed: %v", err)
	}
	if stats.ActiveEmployees != 1 {
		t.Fatalf("want 1 active employee, got %d", stats.ActiveEmployees)
	}
	if stats.PendingOrders != 2 {
		t.Fatalf("past-due orders should be excluded, got %d", stats.PendingOrders)
	}
	if stats.TodaysPendingOrders != 1 {
		t.Fatalf("want 1 order due today, got %d", stats.TodaysPendingOrders)
	}
}
