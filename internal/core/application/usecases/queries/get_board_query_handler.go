package queries

import (
	"context"
)

// GetBoardQueryHandler serves the full board from the engine's snapshot.
type GetBoardQueryHandler struct {
	source SnapshotSource
}

// NewGetBoardQueryHandler creates a handler for board queries.
func NewGetBoardQueryHandler(source SnapshotSource) GetBoardQueryHandler {
	return GetBoardQueryHandler{source: source}
}

// Handle returns a consistent copy of both partitions plus the roster.
func (h GetBoardQueryHandler) Handle(_ context.Context, query GetBoardQuery) (GetBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBoardQueryResponse{}, err
	}

	snap := h.source.Snapshot()
	return GetBoardQueryResponse{
		Active:    snap.Active,
		Archived:  snap.Archived,
		Operators: snap.Operators,
	}, nil
}
