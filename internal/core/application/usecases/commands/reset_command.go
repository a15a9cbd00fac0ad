package commands

import (
	"errors"

	"metrology/internal/pkg/guard"
)

var (
	ErrResetCommandIsNotConstructed = errors.New(
		"ResetCommand must be created via NewResetCommand constructor",
	)
)

// ResetCommand clears every order, both active and archived. This is a
// destructive, irreversible operation with no confirmation step inside the
// core — the transport boundary gates who may issue it.
type ResetCommand struct {
	guard guard.ConstructorGuard
}

// NewResetCommand creates the parameterless reset command.
func NewResetCommand() ResetCommand {
	return ResetCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
// Returns ErrResetCommandIsNotConstructed if validation fails.
func (c ResetCommand) Validate() error {
	return c.guard.Validate(ErrResetCommandIsNotConstructed)
}
