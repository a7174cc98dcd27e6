package queries

import (
	"errors"
	"net/mail"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/pkg/errs"
	"pedidos/internal/pkg/guard"
)

var ErrGetOrdersByCustomerQueryIsNotConstructed = errors.New(
	"GetOrdersByCustomerQuery must be created via one of its constructors",
)

// GetOrdersByCustomerQuery retrieves every order a customer has placed,
// addressed either by customer id or by email. Exactly one of the two
// selectors is set, depending on the constructor used.
type GetOrdersByCustomerQuery struct { //nolint:recvcheck //using for validation
	customerID    *kernel.UUID
	customerEmail string

	guard guard.ConstructorGuard
}

// NewGetOrdersByCustomerIDQuery creates a query selecting by customer id.
func NewGetOrdersByCustomerIDQuery(customerID kernel.UUID) (GetOrdersByCustomerQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetOrdersByCustomerQuery{}, err
	}

	return GetOrdersByCustomerQuery{
		customerID: &customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrdersByCustomerEmailQuery creates a query selecting by the email the
// orders were placed with.
func NewGetOrdersByCustomerEmailQuery(customerEmail string) (GetOrdersByCustomerQuery, error) {
	if customerEmail == "" {
		return GetOrdersByCustomerQuery{}, errs.NewValueIsRequiredError("customerEmail")
	}
	if _, err := mail.ParseAddress(customerEmail); err != nil {
		return GetOrdersByCustomerQuery{}, errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}

	return GetOrdersByCustomerQuery{
		customerEmail: customerEmail,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersByCustomerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByCustomerQueryIsNotConstructed)
}

// CustomerID returns the id selector, or nil when selecting by email.
func (q GetOrdersByCustomerQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// CustomerEmail returns the email selector, or "" when selecting by id.
func (q GetOrdersByCustomerQuery) CustomerEmail() string {
	return q.customerEmail
}
