package ports

import (
	"context"

	"metrology/internal/core/domain/model/order"
)

// StoreState is the whole persisted document: both order partitions plus the
// operator roster. The lists are raw as loaded — they may contain duplicates
// or ids present in both partitions; the Reconciler repairs them before the
// engine adopts the state.
type StoreState struct {
	Active    []order.Doc `json:"active"`
	Archived  []order.Doc `json:"archived"`
	Operators []string    `json:"operators"`
}

// OrderStore is the persistence contract for the order set. The Lifecycle
// Engine only ever loads and saves whole state and queries archived counts;
// which backend sits behind the interface is a deployment-time configuration
// choice invisible to the engine.
//
// Error contract (mirrors the engine's availability-over-durability design):
//   - Load returns empty state, not an error, for a missing or unreadable
//     document; an error signals the backend itself is unusable.
//   - Save errors are surfaced to the caller, which logs them and keeps
//     serving from memory.
//   - Save must be idempotent: replaying the same state is harmless.
type OrderStore interface {
	// Load reads the whole persisted state. A missing or corrupt document
	// yields empty state rather than an error.
	Load(ctx context.Context) (StoreState, error)

	// Save rewrites the whole persisted state.
	Save(ctx context.Context, state StoreState) error

	// CountArchivedByDrawing counts archived orders whose drawing number
	// matches. The Serial Allocator seeds its per-drawing counters from
	// this query.
	CountArchivedByDrawing(ctx context.Context, drawingNumber string) (int, error)

	// Close releases the backend's resources.
	Close() error
}
