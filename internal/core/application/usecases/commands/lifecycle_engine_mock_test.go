package commands_test

import (
	"context"

	"metrology/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

// MockLifecycleEngine records delegation from the command handlers.
type MockLifecycleEngine struct{ mock.Mock }

func (m *MockLifecycleEngine) CreateOrder(ctx context.Context, id, articleNumber, drawingNumber string) error {
	args := m.Called(ctx, id, articleNumber, drawingNumber)
	return args.Error(0)
}

func (m *MockLifecycleEngine) SubmitMeasurement(ctx context.Context, id string, results []order.Measurement, controller string) error {
	args := m.Called(ctx, id, results, controller)
	return args.Error(0)
}

func (m *MockLifecycleEngine) UpdateOperators(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

func (m *MockLifecycleEngine) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
