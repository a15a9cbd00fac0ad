package commands

import (
	"errors"

	"metrology/internal/core/domain/model/order"
	"metrology/internal/pkg/guard"
)

var (
	ErrSubmitMeasurementCommandIsNotConstructed = errors.New(
		"SubmitMeasurementCommand must be created via NewSubmitMeasurementCommand constructor",
	)
	ErrOrderIDIsRequired    = errors.New("order id is required")
	ErrControllerIsRequired = errors.New("controller is required")
)

// SubmitMeasurementCommand represents a measurement submission for an
// active order: the recorded result entries and the operator who measured.
//
// An empty result list is accepted and verdicts as OK (vacuous pass, an
// open product question); each present entry must carry a valid per-feature
// status.
//
// Example:
//
//	results := []order.Measurement{
//	    {Feature: "Ø 12H7", Nominal: 12, Actual: 12.01, Status: order.StatusOK},
//	}
//	cmd, err := NewSubmitMeasurementCommand("QDAS-2024-00172", results, "Weber")
//	if err != nil {
//	    return fmt.Errorf("invalid measurement data: %w", err)
//	}
//
//	handler := NewSubmitMeasurementCommandHandler(engine)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit measurement: %w", err)
//	}
type SubmitMeasurementCommand struct { //nolint:recvcheck //using for validation
	orderID    string
	results    []order.Measurement
	controller string

	guard guard.ConstructorGuard
}

// NewSubmitMeasurementCommand creates a command to archive an active order
// with its measurement results. Validates that the order id and controller
// are present and every result entry carries a valid status.
func NewSubmitMeasurementCommand(orderID string, results []order.Measurement, controller string) (SubmitMeasurementCommand, error) {
	cmd := SubmitMeasurementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setResults(results),
		cmd.setController(controller),
	); err != nil {
		return SubmitMeasurementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitMeasurementCommandIsNotConstructed if validation fails.
func (c SubmitMeasurementCommand) Validate() error {
	return c.guard.Validate(ErrSubmitMeasurementCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being measured.
func (c SubmitMeasurementCommand) OrderID() string {
	return c.orderID
}

// Results returns a copy of the measurement entries.
func (c SubmitMeasurementCommand) Results() []order.Measurement {
	results := make([]order.Measurement, len(c.results))
	copy(results, c.results)
	return results
}

// Controller returns the operator who recorded the results.
func (c SubmitMeasurementCommand) Controller() string {
	return c.controller
}

func (c *SubmitMeasurementCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return ErrOrderIDIsRequired
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitMeasurementCommand) setResults(results []order.Measurement) error {
	for _, m := range results {
		if err := m.Status.Validate(); err != nil {
			return err
		}
	}

	c.results = make([]order.Measurement, len(results))
	copy(c.results, results)
	return nil
}

func (c *SubmitMeasurementCommand) setController(controller string) error {
	if controller == "" {
		return ErrControllerIsRequired
	}

	c.controller = controller
	return nil
}
