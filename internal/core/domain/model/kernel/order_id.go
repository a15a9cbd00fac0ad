package kernel

import (
	"metrology/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrOrderIDIsNotConstructed indicates that an OrderID was not properly initialized
// through one of the constructor functions. This error is returned when validating
// a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString",
)

// OrderID is a value object that identifies a measurement order. Identifiers
// originate either in the upstream system that submits the order (an opaque
// string the core never interprets) or locally, when the submission carried
// no identifier.
//
// Locally generated identifiers are UUID version 7 values: a millisecond
// timestamp followed by a random tail. Two concurrent generations can never
// collide, and ids sort roughly by creation time, which keeps relational
// stores naturally clustered.
//
// The zero value of OrderID is invalid and must be constructed using one of
// the provided factory functions: NewOrderID or OrderIDFromString.
//
// OrderID is immutable and thread-safe, making it suitable for concurrent use.
//
// Example usage:
//
//	// Generate an id for an order that arrived without one
//	id := kernel.NewOrderID()
//
//	// Adopt an id assigned by the origin system
//	id, err := kernel.OrderIDFromString("QDAS-2024-00172")
//	if err != nil {
//	    // handle error
//	}
type OrderID struct {
	id string
}

// NewOrderID generates a new time-ordered unique identifier.
// This is the primary way to assign identifiers to orders that arrive
// without one. The generated id is guaranteed unique even when multiple
// submission stations create orders in the same millisecond.
//
// Example:
//
//	orderID := kernel.NewOrderID()
//	fmt.Println(orderID.String()) // e.g., "0190d7a2-4f3b-7cc1-a5e2-..."
func NewOrderID() OrderID {
	return OrderID{
		id: uuid.Must(uuid.NewV7()).String(),
	}
}

// OrderIDFromString adopts an identifier assigned by an external system.
// The identifier is opaque: any non-empty string is accepted, since the
// origin system owns its format.
//
// Returns an error if the string is empty.
//
// Example:
//
//	id, err := kernel.OrderIDFromString("QDAS-2024-00172")
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
func OrderIDFromString(s string) (OrderID, error) {
	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("order id")
	}
	return OrderID{id: s}, nil
}

// String returns the identifier as a plain string.
// For a zero value OrderID, this returns "".
func (o OrderID) String() string {
	return o.id
}

// IsEqual compares two OrderIDs for equality.
// Returns true if both identifiers represent the same value, false otherwise.
func (o OrderID) IsEqual(other OrderID) bool {
	return o.id == other.id
}

// Validate checks if the OrderID is properly constructed.
// Returns ErrOrderIDIsNotConstructed if the OrderID is a zero value.
//
// This method is useful for validating domain objects during construction
// or when receiving data from external sources.
func (o OrderID) Validate() error {
	if o.id == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
