package commands_test

import (
	"errors"
	"testing"

	"metrology/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("A", "4711-B", "DRW-100")

	engine := new(MockLifecycleEngine)
	engine.On("CreateOrder", ctx, "A", "4711-B", "DRW-100").Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(engine)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	engine.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	engine := new(MockLifecycleEngine)
	h := commands.NewCreateOrderCommandHandler(engine)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	engine.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_EngineError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("A", "4711-B", "DRW-100")

	engine := new(MockLifecycleEngine)
	engine.On("CreateOrder", ctx, "A", "4711-B", "DRW-100").Return(errors.New("engine error")).Once()

	h := commands.NewCreateOrderCommandHandler(engine)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	engine.AssertExpectations(t)
}
