package queries

import (
	"errors"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/pkg/guard"
)

var ErrGetOrdersByDriverQueryIsNotConstructed = errors.New(
	"GetOrdersByDriverQuery must be created via NewGetOrdersByDriverQuery constructor",
)

// GetOrdersByDriverQuery retrieves every order currently or previously
// assigned to a driver.
type GetOrdersByDriverQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersByDriverQuery creates a query for a driver's orders.
func NewGetOrdersByDriverQuery(driverID kernel.UUID) (GetOrdersByDriverQuery, error) {
	query := GetOrdersByDriverQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDriverID(driverID); err != nil {
		return GetOrdersByDriverQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByDriverQueryIsNotConstructed)
}

// DriverID returns the driver selector.
func (q GetOrdersByDriverQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetOrdersByDriverQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	q.driverID = driverID
	return nil
}
