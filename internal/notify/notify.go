// Package notify publishes domain events to Kafka for downstream consumers
// (mail, WhatsApp). Delivery of the messages themselves is out of scope here.
package notify

import (
	"context"
	"encoding/json"
	"time"
)

// Event kinds.
const (
	EventOrderDelivered = "order.delivered"
	EventOrderCancelled = "order.cancelled"
	EventPasswordReset  = "user.password_reset"
)

// Event is the JSON envelope written to the topic. Key is the subject id so
// events for one subject stay ordered within a partition.
type Event struct {
	Kind       string            `json:"kind"`
	SubjectID  string            `json:"subject_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       map[string]string `json:"data,omitempty"`
}

// Publisher is the transport contract. A nil *Producer satisfies it and
// drops events, so callers never branch on messaging availability.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Notifier builds and publishes the platform's events.
type Notifier struct {
	pub   Publisher
	clock func() time.Time
}

func New(pub Publisher) *Notifier {
	return &Notifier{pub: pub, clock: time.Now}
}

func (n *Notifier) OrderDelivered(ctx context.Context, orderID, branchID string) error {
	return n.publish(ctx, EventOrderDelivered, orderID, map[string]string{"branch_id": branchID})
}

func (n *Notifier) OrderCancelled(ctx context.Context, orderID, branchID string) error {
	return n.publish(ctx, EventOrderCancelled, orderID, map[string]string{"branch_id": branchID})
}

func (n *Notifier) PasswordReset(ctx context.Context, userID string) error {
	return n.publish(ctx, EventPasswordReset, userID, nil)
}

func (n *Notifier) publish(ctx context.Context, kind, subjectID string, data map[string]string) error {
	if n == nil || n.pub == nil {
		return nil
	}
	return n.pub.Publish(ctx, Event{
		Kind:       kind,
		SubjectID:  subjectID,
		OccurredAt: n.clock().UTC(),
		Data:       data,
	})
}

func marshalEvent(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}
