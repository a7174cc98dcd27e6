package queries

import (
	"errors"

	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery retrieves every order in one lifecycle state.
type GetOrdersByStatusQuery struct { //nolint:recvcheck //using for validation
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a query filtering by lifecycle state.
// The status must be one of the defined states.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	query := GetOrdersByStatusQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setStatus(status); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Status returns the lifecycle state selector.
func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}

func (q *GetOrdersByStatusQuery) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	q.status = status
	return nil
}
