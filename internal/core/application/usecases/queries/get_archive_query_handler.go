package queries

import (
	"context"

	"metrology/internal/core/domain/model/order"
)

// GetArchiveQueryHandler serves archived orders from the engine's snapshot,
// optionally narrowed to one drawing number.
type GetArchiveQueryHandler struct {
	source SnapshotSource
}

// NewGetArchiveQueryHandler creates a handler for archive queries.
func NewGetArchiveQueryHandler(source SnapshotSource) GetArchiveQueryHandler {
	return GetArchiveQueryHandler{source: source}
}

// Handle returns archived orders in archival order, filtered by drawing
// number when one is given.
func (h GetArchiveQueryHandler) Handle(_ context.Context, query GetArchiveQuery) (GetArchiveQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetArchiveQueryResponse{}, err
	}

	snap := h.source.Snapshot()
	if query.DrawingNumber() == "" {
		return GetArchiveQueryResponse{Archived: snap.Archived}, nil
	}

	filtered := make([]order.Doc, 0, len(snap.Archived))
	for _, doc := range snap.Archived {
		if doc.DrawingNumber == query.DrawingNumber() {
			filtered = append(filtered, doc)
		}
	}

	return GetArchiveQueryResponse{Archived: filtered}, nil
}
