package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByCustomerQueryHandler lists a customer's orders, newest first.
// An unknown customer yields an empty list, not an error: "no orders" is a
// normal answer for this query.
type GetOrdersByCustomerQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByCustomerQueryHandler creates a handler for customer listings.
func NewGetOrdersByCustomerQueryHandler(db *gorm.DB) GetOrdersByCustomerQueryHandler {
	return GetOrdersByCustomerQueryHandler{db: db}
}

// Handle executes the listing for whichever selector the query carries.
func (h GetOrdersByCustomerQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByCustomerQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		condition string
		arg       any
	)
	if id := query.CustomerID(); id != nil {
		condition = "customer_id = ?"
		arg = id.String()
	} else {
		condition = "customer_email = ?"
		arg = query.CustomerEmail()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+condition+`
		ORDER BY created_at DESC
	`, arg).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrderRows(rows)
}
