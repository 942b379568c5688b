package audit

import (
	"context"
	"testing"

	"bakery-platform/internal/status"
)

func TestGateSuppressesAllEvents(t *testing.T) {
	r := NewRecorder()
	ctx := WithBulk(context.Background())

	if _, ok := r.Creation(ctx, "items", "i1"); ok {
		t.Fatalf("expected create to be suppressed")
	}
	changes := ChangeSet{{Field: "status", Old: status.Active, New: status.Deleted}}
	if _, ok := r.Update(ctx, "items", "i1", changes); ok {
		t.Fatalf("expected update to be suppressed")
	}
	if _, ok := r.Deletion(ctx, "items", "i1"); ok {
		t.Fatalf("expected delete to be suppressed")
	}
}

func TestGateDoesNotLeakOutsideItsContext(t *testing.T) {
	r := NewRecorder()

	// Open the gate on a derived context and let it go out of scope.
	func() {
		bulkCtx := WithBulk(context.Background())
		if !Suppressed(bulkCtx) {
			t.Fatalf("expected gate open")
		}
	}()

	// A fresh context is unaffected: no process-wide state to leak.
	if Suppressed(context.Background()) {
		t.Fatalf("expected gate closed on unrelated context")
	}
	if _, ok := r.Creation(context.Background(), "items", "i2"); !ok {
		t.Fatalf("expected record outside the gate")
	}
}

func TestGateInheritedByDerivedContexts(t *testing.T) {
	bulkCtx := WithBulk(context.Background())
	child, cancel := context.WithCancel(bulkCtx)
	defer cancel()

	if !Suppressed(child) {
		t.Fatalf("expected derived context to inherit the gate")
	}
}
