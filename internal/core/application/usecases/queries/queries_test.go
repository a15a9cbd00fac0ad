package queries_test

import (
	"testing"

	"metrology/internal/core/application/usecases/queries"
	"metrology/internal/core/domain/model/order"
	"metrology/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource returns a fixed snapshot.
type stubSource struct {
	snap ports.FullStatePayload
}

func (s stubSource) Snapshot() ports.FullStatePayload { return s.snap }

func TestGetBoardQueryHandler_Handle(t *testing.T) {
	source := stubSource{snap: ports.FullStatePayload{
		Active:    []order.Doc{{ID: "A", Status: order.Active}},
		Archived:  []order.Doc{{ID: "B", Status: order.StatusOK}},
		Operators: []string{"Weber"},
	}}

	t.Run("should return the full snapshot", func(t *testing.T) {
		h := queries.NewGetBoardQueryHandler(source)

		board, err := h.Handle(t.Context(), queries.NewGetBoardQuery())

		require.NoError(t, err)
		assert.Equal(t, source.snap.Active, board.Active)
		assert.Equal(t, source.snap.Archived, board.Archived)
		assert.Equal(t, []string{"Weber"}, board.Operators)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		h := queries.NewGetBoardQueryHandler(source)

		_, err := h.Handle(t.Context(), queries.GetBoardQuery{})

		assert.ErrorIs(t, err, queries.ErrGetBoardQueryIsNotConstructed)
	})
}

func TestGetArchiveQueryHandler_Handle(t *testing.T) {
	source := stubSource{snap: ports.FullStatePayload{
		Archived: []order.Doc{
			{ID: "A", DrawingNumber: "DRW-100", Status: order.StatusOK},
			{ID: "B", DrawingNumber: "DRW-200", Status: order.StatusFail},
			{ID: "C", DrawingNumber: "DRW-100", Status: order.StatusOK},
		},
	}}

	t.Run("should return the whole archive without a filter", func(t *testing.T) {
		h := queries.NewGetArchiveQueryHandler(source)

		resp, err := h.Handle(t.Context(), queries.NewGetArchiveQuery(""))

		require.NoError(t, err)
		assert.Len(t, resp.Archived, 3)
	})

	t.Run("should filter by drawing number preserving order", func(t *testing.T) {
		h := queries.NewGetArchiveQueryHandler(source)

		resp, err := h.Handle(t.Context(), queries.NewGetArchiveQuery("DRW-100"))

		require.NoError(t, err)
		require.Len(t, resp.Archived, 2)
		assert.Equal(t, "A", resp.Archived[0].ID)
		assert.Equal(t, "C", resp.Archived[1].ID)
	})

	t.Run("should return empty for an unknown drawing", func(t *testing.T) {
		h := queries.NewGetArchiveQueryHandler(source)

		resp, err := h.Handle(t.Context(), queries.NewGetArchiveQuery("DRW-999"))

		require.NoError(t, err)
		assert.Empty(t, resp.Archived)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		h := queries.NewGetArchiveQueryHandler(source)

		_, err := h.Handle(t.Context(), queries.GetArchiveQuery{})

		assert.ErrorIs(t, err, queries.ErrGetArchiveQueryIsNotConstructed)
	})
}
