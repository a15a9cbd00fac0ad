package commands

import (
	"context"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// It validates the command and delegates to the single-writer engine, which
// owns dedup, persistence, and broadcasting.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(engine)
//	cmd, _ := NewCreateOrderCommand("", "4711-B", "DRW-100")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	engine LifecycleEngine
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(engine LifecycleEngine) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		engine: engine,
	}
}

// Handle processes the order creation command. A duplicate id is not an
// error for the caller: the engine drops it and every client converges
// through the broadcasts.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.CreateOrder(ctx, cmd.OrderID(), cmd.ArticleNumber(), cmd.DrawingNumber())
}
