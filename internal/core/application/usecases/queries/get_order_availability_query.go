package queries

import (
	"errors"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/pkg/guard"
)

var ErrGetOrderAvailabilityQueryIsNotConstructed = errors.New(
	"GetOrderAvailabilityQuery must be created via NewGetOrderAvailabilityQuery constructor",
)

// GetOrderAvailabilityQuery asks whether a specific order could be claimed
// right now. The answer is advisory: it may be stale by the time a claim is
// attempted, and only the claim itself arbitrates.
type GetOrderAvailabilityQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderAvailabilityQuery creates an availability probe for one order.
func NewGetOrderAvailabilityQuery(orderID kernel.UUID) (GetOrderAvailabilityQuery, error) {
	query := GetOrderAvailabilityQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderAvailabilityQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAvailabilityQueryIsNotConstructed)
}

// OrderID returns the probed order's identifier.
func (q GetOrderAvailabilityQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderAvailabilityQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}
