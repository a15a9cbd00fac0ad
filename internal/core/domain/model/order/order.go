package order

import (
	"errors"
	"time"

	"metrology/internal/core/domain/model/kernel"
	"metrology/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a manufacturing measurement order. It is the aggregate
// root that manages the order lifecycle from creation through measurement
// to archival.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Status transitions follow the ACTIVE -> OK/FAIL state machine
//   - Results, controller, serial number, and completion timestamp are set
//     together, exactly once, at the active-to-archived transition
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.OrderID

	// articleNumber identifies the physical part (opaque, may be empty)
	articleNumber string

	// drawingNumber identifies the technical drawing (opaque, may be empty)
	drawingNumber string

	// status represents the current state in the order lifecycle
	status Status

	// results holds the measurement entries; empty while active
	results []Measurement

	// serialNumber is assigned exactly once at archival; immutable after
	serialNumber string

	// controller is the operator who recorded results; empty while active
	controller string

	// createdAt is when the order entered the system
	createdAt time.Time

	// completedAt is when the order was archived; zero while active
	completedAt time.Time

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order instance in ACTIVE status with validation.
// Together with RestoreOrder this is the only way to create a valid Order,
// ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid)
//   - articleNumber: Identifying attribute of the physical part (opaque, may be empty)
//   - drawingNumber: Identifying attribute of the technical drawing (opaque, may be empty)
//   - createdAt: Timestamp of order creation (must not be zero)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	orderID := kernel.NewOrderID()
//	order, err := NewOrder(orderID, "4711-B", "DRW-100", time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.OrderID, articleNumber, drawingNumber string, createdAt time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Order{
		id:            id,
		articleNumber: articleNumber,
		drawingNumber: drawingNumber,
		status:        Active,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from its canonical serialized shape.
// This function is used when loading persisted state and when the transport
// boundary has already resolved an inbound payload into a Doc.
//
// The status is validated, but archived-only fields (results, serial number,
// controller, completion timestamp) are adopted as persisted: the Reconciler,
// not this constructor, is responsible for repairing divergent stored state.
//
// Returns:
//   - *Order: The restored order if the id and status are valid
//   - error: Validation error otherwise
func RestoreOrder(doc Doc) (*Order, error) {
	id, err := kernel.OrderIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	if err = doc.Status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		id:            id,
		articleNumber: doc.ArticleNumber,
		drawingNumber: doc.DrawingNumber,
		status:        doc.Status,
		serialNumber:  doc.SerialNumber,
		controller:    doc.Controller,
		createdAt:     doc.CreatedAt,
		isConstructed: true,
	}

	if len(doc.Results) > 0 {
		o.results = make([]Measurement, len(doc.Results))
		copy(o.results, doc.Results)
	}

	if doc.CompletedAt != nil {
		o.completedAt = *doc.CompletedAt
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via a factory
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// ArticleNumber returns the identifying attribute of the physical part.
func (o *Order) ArticleNumber() string {
	return o.articleNumber
}

// DrawingNumber returns the identifying attribute of the technical drawing.
func (o *Order) DrawingNumber() string {
	return o.drawingNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Results returns a copy of the measurement entries recorded at archival.
// Returns nil while the order is active.
func (o *Order) Results() []Measurement {
	if len(o.results) == 0 {
		return nil
	}

	results := make([]Measurement, len(o.results))
	copy(results, o.results)
	return results
}

// SerialNumber returns the serial number assigned at archival.
// Returns "" while the order is active.
func (o *Order) SerialNumber() string {
	return o.serialNumber
}

// Controller returns the operator who recorded the results.
// Returns "" while the order is active.
func (o *Order) Controller() string {
	return o.controller
}

// CreatedAt returns the timestamp of order creation.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the timestamp of archival.
// Returns the zero time while the order is active.
func (o *Order) CompletedAt() time.Time {
	return o.completedAt
}

// IsArchived reports whether the order has reached a terminal status.
func (o *Order) IsArchived() bool {
	return o.status.IsArchived()
}

// Complete archives the order with the given measurement results.
//
// The overall verdict is computed from the entries: OK if every entry
// passed, FAIL otherwise. The serial number is allocator-owned and passed
// in; it must be non-empty because archived orders are referenced by serial
// on measurement reports.
//
// This method enforces the following business rules:
//   - The order must be in ACTIVE status (archival happens exactly once)
//   - A serial number is required
//   - The completion timestamp must not be zero
//
// Parameters:
//   - results: The measurement entries to record (may be empty)
//   - controller: The operator who recorded the results
//   - serialNumber: The serial number minted for this archival
//   - completedAt: The archival timestamp
//
// Returns:
//   - nil on successful archival
//   - error if the order is already archived or a parameter is invalid
//
// After successful completion the order's status is OK or FAIL, both of
// which are final states with no further transitions.
func (o *Order) Complete(results []Measurement, controller, serialNumber string, completedAt time.Time) error {
	if serialNumber == "" {
		return errs.NewValueIsRequiredError("serialNumber")
	}

	if completedAt.IsZero() {
		return errs.NewValueIsRequiredError("completedAt")
	}

	newStatus, err := o.status.Complete(Verdict(results))
	if err != nil {
		return err
	}

	o.status = newStatus
	o.results = make([]Measurement, len(results))
	copy(o.results, results)
	o.controller = controller
	o.serialNumber = serialNumber
	o.completedAt = completedAt
	return nil
}
