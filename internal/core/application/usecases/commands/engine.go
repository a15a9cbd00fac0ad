package commands

import (
	"context"

	"metrology/internal/core/domain/model/order"
)

// LifecycleEngine is the mutation surface the command handlers delegate to.
// The concrete implementation serializes all operations behind one mutex;
// handlers stay thin and translation-only.
//
// All four operations share the engine's error contract: validation and
// lookup failures are logged no-ops, storage failures never surface to the
// triggering request.
type LifecycleEngine interface {
	// CreateOrder inserts a new active order, generating an id when the
	// given one is empty. Duplicate ids are dropped silently.
	CreateOrder(ctx context.Context, id, articleNumber, drawingNumber string) error

	// SubmitMeasurement archives the active order with the given results.
	// Unknown or already-archived ids are dropped silently.
	SubmitMeasurement(ctx context.Context, id string, results []order.Measurement, controller string) error

	// UpdateOperators replaces the roster wholesale.
	UpdateOperators(ctx context.Context, names []string) error

	// Reset clears both partitions unconditionally.
	Reset(ctx context.Context) error
}
