package quota

import (
	"context"
	"time"
)

// Decision is the outcome of one admission check. The metadata fields are
// populated on every decision, permitted or not, so callers can expose them
// to clients unconditionally.
type Decision struct {
	// Permitted reports whether the request may proceed.
	Permitted bool

	// Limit is the configured ceiling for the window.
	Limit int

	// Remaining is how many admissions are left in the current window.
	Remaining int

	// Reset is when the current window expires and the counter restarts.
	Reset time.Time
}

// Limiter decides whether a request identified by a client key may proceed.
type Limiter interface {
	// Allow consumes one admission for the identifier. When the counter
	// store cannot be reached the returned error is non-nil and the
	// decision denies; the gate fails closed.
	Allow(ctx context.Context, identifier string) (Decision, error)
}
