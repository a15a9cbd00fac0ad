// Package kernel provides core domain primitives for the metrology system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - OrderID: A value object for measurement order identifiers with
//     validation and comparison capabilities
//
// Order identifiers either arrive from the origin system as opaque strings or
// are generated locally. Locally generated identifiers are time-ordered and
// collision-free under concurrent generation, which makes them safe to mint
// on every submission station without coordination.
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are designed to be
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
