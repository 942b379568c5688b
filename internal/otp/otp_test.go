package otp

import (
	"context"
	"testing"
	"time"
)

func TestIssueGeneratesNumericCodeOfConfiguredLength(t *testing.T) {
	svc := NewService(NewMemoryStore(), 6, time.Minute)

	code, err := svc.Issue(context.Background(), "asha")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("want 6 digits, got %q", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit in code %q", code)
		}
	}
}

func TestValidateConsumesCode(t *testing.T) {
	svc := NewService(NewMemoryStore(), 6, time.Minute)

	code, err := svc.Issue(context.Background(), "asha")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := svc.Validate(context.Background(), "asha", code); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := svc.Validate(context.Background(), "asha", code); err != ErrExpired {
		t.Fatalf("replay: want ErrExpired, got %v", err)
	}
}

func TestValidateRejectsWrongCodeWithoutConsuming(t *testing.T) {
	svc := NewService(NewMemoryStore(), 6, time.Minute)

	code, err := svc.Issue(context.Background(), "asha")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	if err := svc.Validate(context.Background(), "asha", wrong); err != ErrMismatch {
		t.Fatalf("want ErrMismatch, got %v", err)
	}
	if err := svc.Validate(context.Background(), "asha", code); err != nil {
		t.Fatalf("correct code rejected after a wrong attempt: %v", err)
	}
}

func TestExpiredCodeRejected(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.Clock = func() time.Time { return now }
	svc := NewService(store, 6, time.Minute)

	code, err := svc.Issue(context.Background(), "asha")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if err := svc.Validate(context.Background(), "asha", code); err != ErrExpired {
		t.Fatalf("want ErrExpired, got %v", err)
	}
}

func TestReissueReplacesOutstandingCode(t *testing.T) {
	svc := NewService(NewMemoryStore(), 6, time.Minute)

	first, err := svc.Issue(context.Background(), "asha")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	second, err := svc.Issue(context.Background(), "asha")
	if err != nil {
		t.Fatalf("reissue failed: %v", err)
	}

	if first != second {
		if err := svc.Validate(context.Background(), "asha", first); err == nil {
			t.Fatal("stale code accepted after reissue")
		}
	}
	if err := svc.Validate(context.Background(), "asha", second); err != nil {
		t.Fatalf("fresh code rejected: %v", err)
	}
}
