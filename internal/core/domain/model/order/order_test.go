package order_test

import (
	"testing"
	"time"

	"metrology/internal/core/domain/model/kernel"
	"metrology/internal/core/domain/model/order"
	"metrology/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, s string) kernel.OrderID {
	t.Helper()
	id, err := kernel.OrderIDFromString(s)
	require.NoError(t, err)
	return id
}

func TestNewOrder(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("should create an active order", func(t *testing.T) {
		o, err := order.NewOrder(mustID(t, "O-1"), "4711-B", "DRW-100", createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Active, o.Status())
		assert.False(t, o.IsArchived())
		assert.Equal(t, "4711-B", o.ArticleNumber())
		assert.Equal(t, "DRW-100", o.DrawingNumber())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Empty(t, o.SerialNumber())
		assert.Empty(t, o.Controller())
		assert.Nil(t, o.Results())
		assert.True(t, o.CompletedAt().IsZero())
	})

	t.Run("should accept empty article and drawing numbers", func(t *testing.T) {
		o, err := order.NewOrder(mustID(t, "O-2"), "", "", createdAt)

		require.NoError(t, err)
		assert.Empty(t, o.DrawingNumber())
	})

	t.Run("should reject a zero-value id", func(t *testing.T) {
		var id kernel.OrderID

		_, err := order.NewOrder(id, "4711-B", "DRW-100", createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrOrderIDIsNotConstructed)
	})

	t.Run("should reject a zero creation timestamp", func(t *testing.T) {
		_, err := order.NewOrder(mustID(t, "O-3"), "4711-B", "DRW-100", time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for a directly instantiated order", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail for nil", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Complete(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	completedAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	newActive := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewOrderID(), "4711-B", "DRW-100", createdAt)
		require.NoError(t, err)
		return o
	}

	t.Run("should archive with OK verdict when all results passed", func(t *testing.T) {
		o := newActive(t)
		results := []order.Measurement{
			{Feature: "Ø 12H7", Nominal: 12, Actual: 12.01, Status: order.StatusOK},
			{Feature: "L 45", Nominal: 45, Actual: 45.0, Status: order.StatusOK},
		}

		err := o.Complete(results, "Weber", "M-DRW-100-001", completedAt)

		require.NoError(t, err)
		assert.Equal(t, order.StatusOK, o.Status())
		assert.True(t, o.IsArchived())
		assert.Equal(t, results, o.Results())
		assert.Equal(t, "Weber", o.Controller())
		assert.Equal(t, "M-DRW-100-001", o.SerialNumber())
		assert.Equal(t, completedAt, o.CompletedAt())
	})

	t.Run("should archive with FAIL verdict when any result failed", func(t *testing.T) {
		o := newActive(t)
		results := []order.Measurement{
			{Feature: "Ø 12H7", Status: order.StatusOK},
			{Feature: "L 45", Status: order.StatusFail},
		}

		err := o.Complete(results, "Weber", "M-DRW-100-001", completedAt)

		require.NoError(t, err)
		assert.Equal(t, order.StatusFail, o.Status())
	})

	t.Run("should archive an empty result list as OK", func(t *testing.T) {
		o := newActive(t)

		err := o.Complete(nil, "Weber", "M-DRW-100-001", completedAt)

		require.NoError(t, err)
		assert.Equal(t, order.StatusOK, o.Status())
	})

	t.Run("should complete exactly once", func(t *testing.T) {
		o := newActive(t)
		require.NoError(t, o.Complete(nil, "Weber", "M-DRW-100-001", completedAt))

		err := o.Complete(nil, "Huber", "M-DRW-100-002", completedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "Weber", o.Controller(), "archived order must not mutate")
		assert.Equal(t, "M-DRW-100-001", o.SerialNumber())
	})

	t.Run("should require a serial number", func(t *testing.T) {
		o := newActive(t)

		err := o.Complete(nil, "Weber", "", completedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Active, o.Status())
	})

	t.Run("should require a completion timestamp", func(t *testing.T) {
		o := newActive(t)

		err := o.Complete(nil, "Weber", "M-DRW-100-001", time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Doc_Roundtrip(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	completedAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("should restore an archived order from its doc", func(t *testing.T) {
		o, err := order.NewOrder(mustID(t, "O-9"), "4711-B", "DRW-100", createdAt)
		require.NoError(t, err)
		results := []order.Measurement{{Feature: "Ø 12H7", Nominal: 12, Actual: 12.02, Status: order.StatusFail}}
		require.NoError(t, o.Complete(results, "Weber", "M-DRW-100-001", completedAt))

		restored, err := order.RestoreOrder(o.Doc())

		require.NoError(t, err)
		assert.True(t, o.IsEqual(restored))
		assert.Equal(t, o.Doc(), restored.Doc())
	})

	t.Run("should reject a doc without an id", func(t *testing.T) {
		_, err := order.RestoreOrder(order.Doc{Status: order.Active, CreatedAt: createdAt})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a doc with an unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.Doc{ID: "O-10", Status: "DONE", CreatedAt: createdAt})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
