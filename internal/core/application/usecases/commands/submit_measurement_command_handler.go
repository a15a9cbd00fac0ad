package commands

import (
	"context"
)

// SubmitMeasurementCommandHandler handles measurement submissions. It
// validates the command and delegates to the single-writer engine, which
// computes the verdict, mints the serial number, and archives the order.
type SubmitMeasurementCommandHandler struct {
	engine LifecycleEngine
}

// NewSubmitMeasurementCommandHandler creates a handler for measurement
// submissions.
func NewSubmitMeasurementCommandHandler(engine LifecycleEngine) SubmitMeasurementCommandHandler {
	return SubmitMeasurementCommandHandler{
		engine: engine,
	}
}

// Handle processes the measurement submission. A stale order id is not an
// error for the caller: the engine drops the submission and the caller
// resynchronizes from the next full-state broadcast.
func (h *SubmitMeasurementCommandHandler) Handle(ctx context.Context, cmd SubmitMeasurementCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.SubmitMeasurement(ctx, cmd.OrderID(), cmd.Results(), cmd.Controller())
}
