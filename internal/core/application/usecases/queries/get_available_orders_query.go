package queries

import (
	"errors"

	"pedidos/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves every order a driver could claim right
// now. This is the list drivers poll, so its handler is the one query backed
// by the availability cache.
//
// Example:
//
//	query := NewGetAvailableOrdersQuery()
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list available orders: %w", err)
//	}
//
//	fmt.Printf("%d orders up for grabs\n", len(available))
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for claimable orders. This is a
// parameterless query.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}
