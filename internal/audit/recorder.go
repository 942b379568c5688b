package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bakery-platform/internal/auth"
	"bakery-platform/internal/status"

	"github.com/google/uuid"
)

// The tables with domain-specific audit behavior.
const tableOrders = "orders"

// Recorder turns entity lifecycle events into audit records. Entity services
// call it explicitly at their save boundaries; it owns no entity and only
// reacts to what it is told.
//
// Each method returns the record to append and whether one should be appended
// at all: the bulk gate and empty dirty sets both suppress emission. The
// caller persists the record, typically in the same transaction as the entity
// save so the two cannot diverge.
type Recorder struct {
	clock func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{clock: time.Now}
}

// Creation records an entity insert.
func (r *Recorder) Creation(ctx context.Context, table, recordID string) (Record, bool) {
	if Suppressed(ctx) {
		return Record{}, false
	}
	return r.build(ctx, ActionCreate, table, recordID,
		fmt.Sprintf("New record created in %s", table)), true
}

// Update records an entity update from its dirty set.
//
// A dirty status field overrides the generic update action:
// deleted(-1) reads as a delete, active(1) as an enable, inactive(0) as a
// disable. Orders get dedicated delivered/cancel actions instead, since their
// status values collide with the generic tri-state.
func (r *Recorder) Update(ctx context.Context, table, recordID string, changes ChangeSet) (Record, bool) {
	if Suppressed(ctx) || len(changes) == 0 {
		return Record{}, false
	}

	action := ActionUpdate
	desc := fmt.Sprintf("Record updated in %s: %s", table, strings.Join(changes.Fields(), ", "))

	if newStatus, ok := changes.StatusChange(); ok {
		if table == tableOrders {
			switch status.OrderStatus(newStatus) {
			case status.OrderDelivered:
				return r.build(ctx, ActionDelivered, table, recordID, "Order marked as delivered"), true
			case status.OrderCancelled:
				return r.build(ctx, ActionCancel, table, recordID, "Order marked as cancelled"), true
			}
			// pending falls through to the generic mapping
		}
		switch status.Status(newStatus) {
		case status.Deleted:
			action = ActionDelete
			desc = fmt.Sprintf("Record deleted from %s", table)
		case status.Active:
			action = ActionEnable
			desc = fmt.Sprintf("Record enabled from %s", table)
		case status.Inactive:
			action = ActionDisable
			desc = fmt.Sprintf("Record disabled from %s", table)
		}
	}

	return r.build(ctx, action, table, recordID, desc), true
}

// Deletion records a physical row deletion, distinct from the soft delete via
// status flag. The bulk gate suppresses it like any other event.
func (r *Recorder) Deletion(ctx context.Context, table, recordID string) (Record, bool) {
	if Suppressed(ctx) {
		return Record{}, false
	}
	return r.build(ctx, ActionDelete, table, recordID,
		fmt.Sprintf("Record deleted from %s", table)), true
}

func (r *Recorder) build(ctx context.Context, action Action, table, recordID, desc string) Record {
	rec := Record{
		ID:          uuid.NewString(),
		Action:      action,
		Table:       table,
		RecordID:    recordID,
		Description: desc,
		CreatedAt:   r.clock().UTC(),
	}
	if uid, err := auth.UserID(ctx); err == nil {
		rec.PerformedBy = &uid
	}
	return rec
}
