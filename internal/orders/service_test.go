package orders

import (
	"context"
	"testing"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/notify"
	"bakery-platform/internal/status"
)

type capture struct {
	events []notify.Event
}

func (c *capture) Publish(ctx context.Context, ev notify.Event) error {
	c.events = append(c.events, ev)
	return nil
}

func newTestService() (*Service, *audit.MemoryRepo, *capture) {
	audits := audit.NewMemoryRepo()
	sink := &capture{}
	svc := NewService(NewMemoryRepo(audits), audit.NewRecorder(), notify.New(sink))
	return svc, audits, sink
}

func createOrder(t *testing.T, svc *Service, payment status.PaymentStatus) Order {
	t.Helper()
	o, err := svc.Create(context.Background(), "usr-1", CreateRequest{
		BranchID:      "br-1",
		Title:         "Birthday cake",
		DeliveryDate:  time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		TotalAmount:   1200,
		AdvanceAmount: 200,
		PaymentStatus: payment,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return o
}

func TestCreateStartsPending(t *testing.T) {
	svc, audits, _ := newTestService()
	o := createOrder(t, svc, status.PaymentUnpaid)

	if o.Status != status.OrderPending {
		t.Fatalf("want pending, got %d", o.Status)
	}

	recs := audits.Records()
	if len(recs) != 1 || recs[0].Action != audit.ActionCreate || recs[0].Table != Table {
		t.Fatalf("unexpected audit records: %+v", recs)
	}
}

func TestDeliverSettlesPayment(t *testing.T) {
	cases := []struct {
		name    string
		payment status.PaymentStatus
		want    status.PaymentStatus
	}{
		{"unpaid collects in full", status.PaymentUnpaid, status.PaymentFullyPaid},
		{"advance collects balance", status.PaymentAdvancePaid, status.PaymentFullyPaid},
		{"already settled stays", status.PaymentFullyPaid, status.PaymentFullyPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			o := createOrder(t, svc, tc.payment)

			got, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderDelivered)
			if err != nil {
				t.Fatalf("deliver failed: %v", err)
			}
			if got.PaymentStatus != tc.want {
				t.Fatalf("want payment %d, got %d", tc.want, got.PaymentStatus)
			}
		})
	}
}

func TestCancelRefundsRegardlessOfPayment(t *testing.T) {
	for _, payment := range []status.PaymentStatus{
		status.PaymentUnpaid, status.PaymentAdvancePaid, status.PaymentFullyPaid,
	} {
		svc, _, _ := newTestService()
		o := createOrder(t, svc, payment)

		got, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderCancelled)
		if err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if got.PaymentStatus != status.PaymentRefunded {
			t.Fatalf("payment %d: want refunded, got %d", payment, got.PaymentStatus)
		}
	}
}

func TestReopenLeavesPaymentUntouched(t *testing.T) {
	svc, _, _ := newTestService()
	o := createOrder(t, svc, status.PaymentUnpaid)

	if _, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderDelivered); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	got, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderPending)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got.Status != status.OrderPending {
		t.Fatalf("want pending, got %d", got.Status)
	}
	if got.PaymentStatus != status.PaymentFullyPaid {
		t.Fatalf("reopen should not touch payment, got %d", got.PaymentStatus)
	}
}

func TestDeliverRecordsDedicatedAction(t *testing.T) {
	svc, audits, _ := newTestService()
	o := createOrder(t, svc, status.PaymentAdvancePaid)

	if _, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderDelivered); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	recs := audits.Records()
	rec := recs[len(recs)-1]
	if rec.Action != audit.ActionDelivered {
		t.Fatalf("want delivered action, got %q", rec.Action)
	}
	if rec.Description != "Order marked as delivered" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestCancelRecordsDedicatedAction(t *testing.T) {
	svc, audits, _ := newTestService()
	o := createOrder(t, svc, status.PaymentUnpaid)

	if _, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	recs := audits.Records()
	rec := recs[len(recs)-1]
	if rec.Action != audit.ActionCancel {
		t.Fatalf("want cancel action, got %q", rec.Action)
	}
	if rec.Description != "Order marked as cancelled" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestReopenRecordsGenericDisable(t *testing.T) {
	svc, audits, _ := newTestService()
	o := createOrder(t, svc, status.PaymentUnpaid)

	if _, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderDelivered); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderPending); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	recs := audits.Records()
	if rec := recs[len(recs)-1]; rec.Action != audit.ActionDisable {
		t.Fatalf("want disable action for the pending fallback, got %q", rec.Action)
	}
}

func TestStatusChangePublishesEvents(t *testing.T) {
	svc, _, sink := newTestService()
	o := createOrder(t, svc, status.PaymentUnpaid)

	if _, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderDelivered); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("want 1 event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != notify.EventOrderDelivered || ev.SubjectID != o.ID || ev.Data["branch_id"] != "br-1" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	o2 := createOrder(t, svc, status.PaymentUnpaid)
	if _, err := svc.UpdateStatus(context.Background(), o2.ID, status.OrderCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if sink.events[len(sink.events)-1].Kind != notify.EventOrderCancelled {
		t.Fatalf("unexpected events: %+v", sink.events)
	}
}

func TestNoopStatusChangePublishesNothing(t *testing.T) {
	svc, audits, sink := newTestService()
	o := createOrder(t, svc, status.PaymentUnpaid)

	if _, err := svc.UpdateStatus(context.Background(), o.ID, status.OrderPending); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(sink.events) != 0 {
		t.Fatalf("want no events, got %+v", sink.events)
	}
	if got := len(audits.Records()); got != 1 {
		t.Fatalf("want only the create record, got %d", got)
	}
}

func TestGetForBranchScopesAccess(t *testing.T) {
	svc, _, _ := newTestService()
	o := createOrder(t, svc, status.PaymentUnpaid)

	if _, err := svc.GetForBranch(context.Background(), "br-1", o.ID); err != nil {
		t.Fatalf("same branch should see the order: %v", err)
	}
	if _, err := svc.GetForBranch(context.Background(), "br-2", o.ID); err != ErrWrongBranch {
		t.Fatalf("want ErrWrongBranch, got %v", err)
	}
}

func TestListOrdersNewestDeliveryFirst(t *testing.T) {
	svc, _, _ := newTestService()

	mk := func(title string, day int) {
		_, err := svc.Create(context.Background(), "usr-1", CreateRequest{
			BranchID:      "br-1",
			Title:         title,
			DeliveryDate:  time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC),
			TotalAmount:   100,
			PaymentStatus: status.PaymentUnpaid,
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	mk("early", 3)
	mk("late", 9)
	mk("middle", 6)

	got, total, err := svc.ListForBranch(context.Background(), "br-1", ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("want 3 orders, got %d", total)
	}
	if got[0].Title != "late" || got[1].Title != "middle" || got[2].Title != "early" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
