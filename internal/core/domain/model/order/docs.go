// Package order provides domain entities and business logic for measurement
// order management in the metrology system. It implements the Order aggregate
// root with lifecycle management and state transitions, and the Set aggregate
// that partitions orders into active and archived.
//
// The package includes:
//   - Order: The aggregate root managing order identity, measurement results,
//     and the active-to-archived transition
//   - Status: A state machine enforcing valid order status transitions
//   - Measurement: A single measured feature with its pass/fail verdict
//   - Set: The order collection partitioned into active and archived, with
//     insertion order preserved
//   - Doc: The one canonical serialized shape shared by every store and
//     broadcast event
//
// Key business rules:
//   - Orders must have a valid unique identifier
//   - Order status follows a defined workflow: ACTIVE -> OK or ACTIVE -> FAIL
//   - OK and FAIL are terminal; archived orders never mutate again
//   - A serial number is assigned exactly once, at archival
//   - An id appears in at most one partition of the Set
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
