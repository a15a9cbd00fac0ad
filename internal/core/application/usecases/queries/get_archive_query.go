package queries

import (
	"errors"

	"metrology/internal/core/domain/model/order"
	"metrology/internal/pkg/guard"
)

var (
	ErrGetArchiveQueryIsNotConstructed = errors.New(
		"GetArchiveQuery must be created via NewGetArchiveQuery constructor",
	)
)

// GetArchiveQuery retrieves archived orders, optionally filtered by drawing
// number. Dashboards use the filter to show one drawing's measurement
// history next to its serial sequence.
type GetArchiveQuery struct {
	drawingNumber string

	guard guard.ConstructorGuard
}

// NewGetArchiveQuery creates an archive query. An empty drawing number
// means no filter: the whole archive is returned.
func NewGetArchiveQuery(drawingNumber string) GetArchiveQuery {
	return GetArchiveQuery{
		drawingNumber: drawingNumber,
		guard:         guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetArchiveQueryIsNotConstructed if validation fails.
func (q GetArchiveQuery) Validate() error {
	return q.guard.Validate(ErrGetArchiveQueryIsNotConstructed)
}

// DrawingNumber returns the filter, or "" for no filter.
func (q GetArchiveQuery) DrawingNumber() string {
	return q.drawingNumber
}

// GetArchiveQueryResponse is the filtered archive view, in archival order.
type GetArchiveQueryResponse struct {
	Archived []order.Doc `json:"archived"`
}
