package trips

import (
	"context"
	"testing"
	"time"

	"bakery-platform/internal/audit"
)

type stubItems map[string]string // id -> name

func (s stubItems) NameByID(ctx context.Context, id string) (string, bool, error) {
	name, ok := s[id]
	return name, ok, nil
}

func newTestService() (*Service, *audit.MemoryRepo) {
	audits := audit.NewMemoryRepo()
	items := stubItems{"itm-1": "Croissant", "itm-2": "Baguette"}
	svc := NewService(NewMemoryRepo(audits, items), audit.NewRecorder(), items)
	return svc, audits
}

func TestAddStockCreatesTripWithAudit(t *testing.T) {
	svc, audits := newTestService()

	trip, err := svc.AddStock(context.Background(), AddStockRequest{
		BranchID:   "br-1",
		EmployeeID: "emp-1",
		Items: []StockRequest{
			{ItemID: "itm-1", Quantity: 12},
			{ItemID: "itm-2", Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("add stock failed: %v", err)
	}

	details, err := svc.GetTripDetails(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if len(details.Items) != 2 {
		t.Fatalf("want 2 stock lines, got %d", len(details.Items))
	}

	recs := audits.Records()
	if len(recs) != 1 {
		t.Fatalf("want 1 audit record, got %d", len(recs))
	}
	if recs[0].Action != audit.ActionCreate || recs[0].Table != Table || recs[0].RecordID != trip.ID {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}

func TestAddStockValidatesLoad(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name string
		req  AddStockRequest
	}{
		{"no items", AddStockRequest{BranchID: "br-1", EmployeeID: "emp-1"}},
		{"zero quantity", AddStockRequest{
			BranchID: "br-1", EmployeeID: "emp-1",
			Items: []StockRequest{{ItemID: "itm-1", Quantity: 0}},
		}},
		{"unknown item", AddStockRequest{
			BranchID: "br-1", EmployeeID: "emp-1",
			Items: []StockRequest{{ItemID: "itm-404", Quantity: 1}},
		}},
		{"missing employee", AddStockRequest{
			BranchID: "br-1",
			Items:    []StockRequest{{ItemID: "itm-1", Quantity: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddStock(context.Background(), tc.req); err != ErrInvalidArgument {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestItemsByDateAggregatesAcrossTrips(t *testing.T) {
	svc, _ := newTestService()

	add := func(items []StockRequest) {
		if _, err := svc.AddStock(context.Background(), AddStockRequest{
			BranchID: "br-1", EmployeeID: "emp-1", Items: items,
		}); err != nil {
			t.Fatalf("add stock failed: %v", err)
		}
	}
	add([]StockRequest{{ItemID: "itm-1", Quantity: 10}, {ItemID: "itm-2", Quantity: 5}})
	add([]StockRequest{{ItemID: "itm-1", Quantity: 7}})

	totals, err := svc.ItemsByDate(context.Background(), "br-1", time.Now())
	if err != nil {
		t.Fatalf("totals failed: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("want 2 item totals, got %+v", totals)
	}
	if totals[0].ItemName != "Baguette" || totals[0].TotalQuantity != 5 {
		t.Fatalf("unexpected first total: %+v", totals[0])
	}
	if totals[1].ItemName != "Croissant" || totals[1].TotalQuantity != 17 {
		t.Fatalf("unexpected second total: %+v", totals[1])
	}
}

func TestItemsByDateScopedToBranchAndDate(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddStock(context.Background(), AddStockRequest{
		BranchID: "br-1", EmployeeID: "emp-1",
		Items: []StockRequest{{ItemID: "itm-1", Quantity: 3}},
	}); err != nil {
		t.Fatalf("add stock failed: %v", err)
	}

	totals, err := svc.ItemsByDate(context.Background(), "br-2", time.Now())
	if err != nil {
		t.Fatalf("totals failed: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("other branch should see nothing, got %+v", totals)
	}

	totals, err = svc.ItemsByDate(context.Background(), "br-1", time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("totals failed: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("other date should see nothing, got %+v", totals)
	}
}
