package audit

import "context"

// The bulk gate suppresses per-record audit emission during batch work so a
// thousand-row import does not produce a thousand records. The caller writes
// one import summary instead.
//
// The gate is context-scoped, not process-wide: it travels with the request's
// context and dies with it, so a crashed import can never leave auditing
// disabled for later requests sharing the process.

type bulkGateKey struct{}

// WithBulk returns a context under which per-record audit emission is
// suppressed. Scope it tightly to the batch loop; everything derived from the
// returned context is suppressed.
func WithBulk(ctx context.Context) context.Context {
	return context.WithValue(ctx, bulkGateKey{}, true)
}

// Suppressed reports whether the bulk gate is open on this context.
func Suppressed(ctx context.Context) bool {
	v, _ := ctx.Value(bulkGateKey{}).(bool)
	return v
}
