package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByDriverQueryHandler lists the orders assigned to a driver,
// newest first. Cancelled orders keep their driver, so a driver's history
// includes deliveries that never completed.
type GetOrdersByDriverQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByDriverQueryHandler creates a handler for driver listings.
func NewGetOrdersByDriverQueryHandler(db *gorm.DB) GetOrdersByDriverQueryHandler {
	return GetOrdersByDriverQueryHandler{db: db}
}

// Handle executes the listing. An unknown driver yields an empty list.
func (h GetOrdersByDriverQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByDriverQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE driver_id = ?
		ORDER BY created_at DESC
	`, query.DriverID().String()).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrderRows(rows)
}
