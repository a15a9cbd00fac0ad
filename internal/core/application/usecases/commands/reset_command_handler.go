package commands

import (
	"context"
)

// ResetCommandHandler handles the full reset. It validates the command and
// delegates to the single-writer engine.
type ResetCommandHandler struct {
	engine LifecycleEngine
}

// NewResetCommandHandler creates a handler for the full reset.
func NewResetCommandHandler(engine LifecycleEngine) ResetCommandHandler {
	return ResetCommandHandler{
		engine: engine,
	}
}

// Handle clears both partitions unconditionally.
func (h *ResetCommandHandler) Handle(ctx context.Context, cmd ResetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.Reset(ctx)
}
