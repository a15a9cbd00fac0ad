// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the metrology system. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - SerialAllocator: A domain service minting per-drawing sequential
//     serial numbers behind an atomic counter
//   - Reconciler: A domain service repairing divergent persisted state at
//     startup (dedup, archive-wins, roster fallback)
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
