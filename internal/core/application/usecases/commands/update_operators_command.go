package commands

import (
	"errors"

	"metrology/internal/pkg/guard"
)

var (
	ErrUpdateOperatorsCommandIsNotConstructed = errors.New(
		"UpdateOperatorsCommand must be created via NewUpdateOperatorsCommand constructor",
	)
)

// UpdateOperatorsCommand replaces the operator roster wholesale. The roster
// is display data owned by the operators; no validation beyond "is a
// sequence of strings" is applied, and an empty roster is accepted —
// clients must render an empty operator list gracefully, not the engine.
type UpdateOperatorsCommand struct {
	names []string

	guard guard.ConstructorGuard
}

// NewUpdateOperatorsCommand creates a command carrying the replacement
// roster.
func NewUpdateOperatorsCommand(names []string) (UpdateOperatorsCommand, error) {
	copied := make([]string, len(names))
	copy(copied, names)

	return UpdateOperatorsCommand{
		names: copied,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOperatorsCommandIsNotConstructed if validation fails.
func (c UpdateOperatorsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOperatorsCommandIsNotConstructed)
}

// Names returns a copy of the replacement roster in order.
func (c UpdateOperatorsCommand) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}
