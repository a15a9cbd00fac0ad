package queries

import (
	"errors"

	"metrology/internal/core/domain/model/order"
	"metrology/internal/pkg/guard"
)

var (
	ErrGetBoardQueryIsNotConstructed = errors.New(
		"GetBoardQuery must be created via NewGetBoardQuery constructor",
	)
)

// GetBoardQuery retrieves the full board: active orders, archived orders,
// and the operator roster. This is the same view a freshly connected
// subscriber receives, exposed over request/response for clients that poll
// instead of subscribing.
//
// Example:
//
//	query := NewGetBoardQuery()
//	handler := NewGetBoardQueryHandler(engine)
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get board: %w", err)
//	}
//	fmt.Printf("%d active, %d archived\n", len(board.Active), len(board.Archived))
type GetBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBoardQuery creates the parameterless board query.
func NewGetBoardQuery() GetBoardQuery {
	return GetBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBoardQueryIsNotConstructed if validation fails.
func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}

// GetBoardQueryResponse is the full board view.
type GetBoardQueryResponse struct {
	Active    []order.Doc `json:"active"`
	Archived  []order.Doc `json:"archived"`
	Operators []string    `json:"operators"`
}
