package snapshotfile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metrology/internal/core/domain/model/order"
	"metrology/internal/core/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.json")
	return NewStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_Load(t *testing.T) {
	t.Run("should return empty state when file does not exist", func(t *testing.T) {
		store := newTestStore(t)

		state, err := store.Load(context.Background())

		require.NoError(t, err)
		assert.Empty(t, state.Active)
		assert.Empty(t, state.Archived)
		assert.Empty(t, state.Operators)
	})

	t.Run("should return empty state when file is corrupt", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

		state, err := store.Load(context.Background())

		require.NoError(t, err)
		assert.Empty(t, state.Active)
		assert.Empty(t, state.Archived)
	})

	t.Run("should round-trip saved state", func(t *testing.T) {
		store := newTestStore(t)
		saved := ports.StoreState{
			Active: []order.Doc{
				{
					ID:            "order-1",
					ArticleNumber: "4711-B",
					DrawingNumber: "DRW-100",
					Status:        order.Active,
					CreatedAt:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
				},
			},
			Archived:  []order.Doc{},
			Operators: []string{"Weber"},
		}

		require.NoError(t, store.Save(context.Background(), saved))
		loaded, err := store.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})
}

func TestStore_Save(t *testing.T) {
	t.Run("should create missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deeper", "orders.json")
		store := NewStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))

		err := store.Save(context.Background(), ports.StoreState{Operators: []string{"Admin"}})

		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("should replace the document without leaving a temporary file", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Save(context.Background(), ports.StoreState{Operators: []string{"Weber"}}))

		require.NoError(t, store.Save(context.Background(), ports.StoreState{Operators: []string{"Huber"}}))

		assert.NoFileExists(t, store.Path()+".tmp")
		state, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Huber"}, state.Operators)
	})

	t.Run("should write the canonical document layout", func(t *testing.T) {
		store := newTestStore(t)
		completedFirst := time.Date(2024, 3, 1, 7, 42, 0, 0, time.UTC)
		completedSecond := time.Date(2024, 3, 1, 8, 20, 0, 0, time.UTC)
		state := ports.StoreState{
			Active: []order.Doc{
				{
					ID:            "0191e3a0-7a2c-7bb0-9d5a-0c36f1f4a101",
					ArticleNumber: "4711-B",
					DrawingNumber: "DRW-100",
					Status:        order.Active,
					CreatedAt:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
				},
			},
			Archived: []order.Doc{
				{
					ID:            "0191e3a0-12f4-7cc1-8e2b-5a9d00b3c202",
					ArticleNumber: "4711-B",
					DrawingNumber: "DRW-100",
					Status:        order.StatusOK,
					Results: []order.Measurement{
						{Feature: "Length 12H7", Nominal: 12, Actual: 12.01, Status: order.StatusOK},
						{Feature: "Bore depth", Nominal: 8.5, Actual: 8.49, Status: order.StatusOK},
					},
					SerialNumber: "M-DRW-100-001",
					Controller:   "Weber",
					CreatedAt:    time.Date(2024, 3, 1, 7, 10, 0, 0, time.UTC),
					CompletedAt:  &completedFirst,
				},
				{
					ID:            "0191e3a0-44aa-7dd2-b3c4-6e8f11d5e303",
					ArticleNumber: "5220-A",
					DrawingNumber: "DRW-205",
					Status:        order.StatusFail,
					Results: []order.Measurement{
						{Feature: "Flatness", Nominal: 0.05, Actual: 0.09, Status: order.StatusFail},
					},
					SerialNumber: "M-DRW-205-001",
					Controller:   "Huber",
					CreatedAt:    time.Date(2024, 3, 1, 7, 55, 0, 0, time.UTC),
					CompletedAt:  &completedSecond,
				},
			},
			Operators: []string{"Weber", "Huber", "Admin"},
		}

		require.NoError(t, store.Save(context.Background(), state))
		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)

		g := goldie.New(t)
		g.Assert(t, "snapshot_document", data)
	})
}

func TestStore_CountArchivedByDrawing(t *testing.T) {
	t.Run("should count only archived orders with matching drawing number", func(t *testing.T) {
		store := newTestStore(t)
		state := ports.StoreState{
			Active: []order.Doc{
				{ID: "a", DrawingNumber: "DRW-100", Status: order.Active, CreatedAt: time.Now().UTC()},
			},
			Archived: []order.Doc{
				{ID: "b", DrawingNumber: "DRW-100", Status: order.StatusOK, CreatedAt: time.Now().UTC()},
				{ID: "c", DrawingNumber: "DRW-100", Status: order.StatusFail, CreatedAt: time.Now().UTC()},
				{ID: "d", DrawingNumber: "DRW-205", Status: order.StatusOK, CreatedAt: time.Now().UTC()},
			},
			Operators: []string{"Admin"},
		}
		require.NoError(t, store.Save(context.Background(), state))

		count, err := store.CountArchivedByDrawing(context.Background(), "DRW-100")

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("should return zero for an unknown drawing number", func(t *testing.T) {
		store := newTestStore(t)

		count, err := store.CountArchivedByDrawing(context.Background(), "DRW-999")

		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
