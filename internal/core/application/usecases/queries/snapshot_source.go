package queries

import "metrology/internal/core/ports"

// SnapshotSource supplies a consistent copy of both partitions and the
// roster. The in-memory set behind the engine is the read model; queries
// never touch the store directly.
type SnapshotSource interface {
	Snapshot() ports.FullStatePayload
}
