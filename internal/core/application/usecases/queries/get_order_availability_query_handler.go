package queries

import (
	"context"

	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderAvailabilityQueryHandler answers whether one order is claimable.
// The probe reads only the status column; an unknown order is an error, not
// "unavailable", so callers can distinguish the two.
type GetOrderAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderAvailabilityQueryHandler creates a handler for availability probes.
func NewGetOrderAvailabilityQueryHandler(db *gorm.DB) GetOrderAvailabilityQueryHandler {
	return GetOrderAvailabilityQueryHandler{db: db}
}

// Handle executes the probe. Returns *errs.ObjectNotFoundError when the order
// does not exist.
func (h GetOrderAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAvailabilityQuery,
) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Rows()
	if err != nil {
		return false, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return false, err
		}
		return false, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	var status int
	if err = rows.Scan(&status); err != nil {
		return false, err
	}

	return order.Status(status) == order.StatusPending, nil
}
