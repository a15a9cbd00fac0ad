package commands

import (
	"context"
)

// UpdateOperatorsCommandHandler handles roster replacement. It validates
// the command and delegates to the single-writer engine.
type UpdateOperatorsCommandHandler struct {
	engine LifecycleEngine
}

// NewUpdateOperatorsCommandHandler creates a handler for roster replacement.
func NewUpdateOperatorsCommandHandler(engine LifecycleEngine) UpdateOperatorsCommandHandler {
	return UpdateOperatorsCommandHandler{
		engine: engine,
	}
}

// Handle replaces the roster wholesale.
func (h *UpdateOperatorsCommandHandler) Handle(ctx context.Context, cmd UpdateOperatorsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.UpdateOperators(ctx, cmd.Names())
}
