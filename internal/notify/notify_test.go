package notify

import (
	"context"
	"testing"
)

type capture struct {
	events []Event
}

func (c *capture) Publish(ctx context.Context, ev Event) error {
	c.events = append(c.events, ev)
	return nil
}

func TestOrderEventsCarrySubjectAndBranch(t *testing.T) {
	sink := &capture{}
	n := New(sink)

	if err := n.OrderDelivered(context.Background(), "ord-1", "br-1"); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := n.OrderCancelled(context.Background(), "ord-2", "br-2"); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(sink.events) != 2 {
		t.Fatalf("want 2 events, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != EventOrderDelivered || ev.SubjectID != "ord-1" || ev.Data["branch_id"] != "br-1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.OccurredAt.IsZero() {
		t.Fatal("occurred_at should be set")
	}
	if sink.events[1].Kind != EventOrderCancelled {
		t.Fatalf("unexpected second event: %+v", sink.events[1])
	}
}

func TestNilNotifierAndNilPublisherDropEvents(t *testing.T) {
	var n *Notifier
	if err := n.OrderDelivered(context.Background(), "ord-1", "br-1"); err != nil {
		t.Fatalf("nil notifier should drop silently, got %v", err)
	}

	n = New(nil)
	if err := n.PasswordReset(context.Background(), "usr-1"); err != nil {
		t.Fatalf("nil publisher should drop silently, got %v", err)
	}
}

func TestNilProducerSatisfiesPublisher(t *testing.T) {
	var p *Producer
	n := New(p)
	if err := n.OrderDelivered(context.Background(), "ord-1", "br-1"); err != nil {
		t.Fatalf("nil producer should drop silently, got %v", err)
	}
}
