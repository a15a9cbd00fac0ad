package commands

import (
	"errors"

	"metrology/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new measurement
// order. The transport boundary has already resolved the inbound payload
// into this one canonical shape; the core never sees the raw wire format.
//
// All three fields are opaque strings owned by the origin system. An empty
// order id means none was assigned and the engine generates one; empty
// article and drawing numbers are legal (drawing-less orders receive
// placeholder serials at archival).
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("QDAS-2024-00172", "4711-B", "DRW-100")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(engine)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct {
	orderID       string
	articleNumber string
	drawingNumber string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new measurement
// order. All parameters are optional opaque strings.
func NewCreateOrderCommand(orderID, articleNumber, drawingNumber string) (CreateOrderCommand, error) {
	return CreateOrderCommand{
		orderID:       orderID,
		articleNumber: articleNumber,
		drawingNumber: drawingNumber,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned by the origin system,
// or "" when none was assigned.
func (c CreateOrderCommand) OrderID() string {
	return c.orderID
}

// ArticleNumber returns the identifying attribute of the physical part.
func (c CreateOrderCommand) ArticleNumber() string {
	return c.articleNumber
}

// DrawingNumber returns the identifying attribute of the technical drawing.
func (c CreateOrderCommand) DrawingNumber() string {
	return c.drawingNumber
}
