package audit

import (
	"context"
	"testing"
	"time"

	"bakery-platform/internal/auth"
	"bakery-platform/internal/status"
)

func fixedRecorder() *Recorder {
	r := NewRecorder()
	r.clock = func() time.Time { return time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestCreationBuildsRecord(t *testing.T) {
	r := fixedRecorder()
	ctx := auth.WithIdentity(context.Background(), "user-1", "branch-1", "admin")

	rec, ok := r.Creation(ctx, "employees", "emp-1")
	if !ok {
		t.Fatalf("expected a record")
	}
	if rec.Action != ActionCreate {
		t.Fatalf("expected create, got %s", rec.Action)
	}
	if rec.Description != "New record created in employees" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
	if rec.PerformedBy == nil || *rec.PerformedBy != "user-1" {
		t.Fatalf("expected performer user-1, got %v", rec.PerformedBy)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be set")
	}
}

func TestCreationWithoutIdentityHasNilPerformer(t *testing.T) {
	r := fixedRecorder()

	rec, ok := r.Creation(context.Background(), "items", "item-1")
	if !ok {
		t.Fatalf("expected a record")
	}
	if rec.PerformedBy != nil {
		t.Fatalf("expected nil performer for system action")
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		name       string
		newStatus  status.Status
		wantAction Action
		wantDesc   string
	}{
		{"soft delete", status.Deleted, ActionDelete, "Record deleted from employees"},
		{"enable", status.Active, ActionEnable, "Record enabled from employees"},
		{"disable", status.Inactive, ActionDisable, "Record disabled from employees"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := fixedRecorder()
			changes := ChangeSet{{Field: "status", Old: status.Active, New: tc.newStatus}}

			rec, ok := r.Update(context.Background(), "employees", "emp-1", changes)
			if !ok {
				t.Fatalf("expected a record")
			}
			if rec.Action != tc.wantAction {
				t.Fatalf("got action %s, want %s", rec.Action, tc.wantAction)
			}
			if rec.Description != tc.wantDesc {
				t.Fatalf("got description %q, want %q", rec.Description, tc.wantDesc)
			}
		})
	}
}

func TestUpdateNonStatusFieldsListsDirtySetInOrder(t *testing.T) {
	r := fixedRecorder()
	changes := ChangeSet{
		{Field: "name", Old: "a", New: "b"},
		{Field: "mobile", Old: "111", New: "222"},
		{Field: "branch_id", Old: "b1", New: "b2"},
	}

	rec, ok := r.Update(context.Background(), "employees", "emp-1", changes)
	if !ok {
		t.Fatalf("expected a record")
	}
	if rec.Action != ActionUpdate {
		t.Fatalf("expected update, got %s", rec.Action)
	}
	want := "Record updated in employees: name, mobile, branch_id"
	if rec.Description != want {
		t.Fatalf("got %q, want %q", rec.Description, want)
	}
}

func TestUpdateEmptyChangeSetEmitsNothing(t *testing.T) {
	r := fixedRecorder()
	if _, ok := r.Update(context.Background(), "employees", "emp-1", nil); ok {
		t.Fatalf("expected no record for empty dirty set")
	}
}

func TestOrderDeliveredAndCancelledOverrides(t *testing.T) {
	r := fixedRecorder()

	changes := ChangeSet{{Field: "status", Old: status.OrderPending, New: status.OrderDelivered}}
	rec, ok := r.Update(context.Background(), "orders", "ord-1", changes)
	if !ok {
		t.Fatalf("expected a record")
	}
	if rec.Action != ActionDelivered {
		t.Fatalf("expected delivered, got %s", rec.Action)
	}
	if rec.Description != "Order marked as delivered" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}

	changes = ChangeSet{{Field: "status", Old: status.OrderPending, New: status.OrderCancelled}}
	rec, ok = r.Update(context.Background(), "orders", "ord-1", changes)
	if !ok {
		t.Fatalf("expected a record")
	}
	if rec.Action != ActionCancel {
		t.Fatalf("expected cancel, got %s", rec.Action)
	}
	if rec.Description != "Order marked as cancelled" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}

func TestOrderBackToPendingFallsThroughToGenericMapping(t *testing.T) {
	r := fixedRecorder()

	changes := ChangeSet{{Field: "status", Old: status.OrderDelivered, New: status.OrderPending}}
	rec, ok := r.Update(context.Background(), "orders", "ord-1", changes)
	if !ok {
		t.Fatalf("expected a record")
	}
	// pending(0) maps onto the generic inactive(0) branch
	if rec.Action != ActionDisable {
		t.Fatalf("expected disable, got %s", rec.Action)
	}
}

func TestDeletionBuildsRecord(t *testing.T) {
	r := fixedRecorder()

	rec, ok := r.Deletion(context.Background(), "trips", "trip-1")
	if !ok {
		t.Fatalf("expected a record")
	}
	if rec.Action != ActionDelete {
		t.Fatalf("expected delete, got %s", rec.Action)
	}
	if rec.Description != "Record deleted from trips" {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
}
