package utils

import (
	"context"
	"testing"
	"time"
)

func TestRateLimitScriptCompiles(t *testing.T) {
	// Compile-time smoke test: script should be initialized.
	if rateLimitScript == nil {
		t.Fatalf("expected rate limit script to be initialized")
	}
}

func TestAllowRateValidatesArgs(t *testing.T) {
	ctx := context.Background()
	if _, err := AllowRate(ctx, nil, "k", 1, time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
