package queries

import (
	"context"

	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/core/ports"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler lists claimable orders, reading through the
// availability cache. On a cache hit the database is not touched; on a miss
// the handler queries pending orders and repopulates the cache best-effort.
//
// Staleness is acceptable here: the claim path re-checks the order's real
// state under a conditional write, so the worst a stale list costs a driver
// is one failed claim.
type GetAvailableOrdersQueryHandler struct {
	db    *gorm.DB
	cache ports.OrderCache
}

// NewGetAvailableOrdersQueryHandler creates a handler for the claimable-order
// listing. The cache may be nil, in which case every call hits the database.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB, cache ports.OrderCache) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db, cache: cache}
}

// Handle executes the listing, oldest orders first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		cached, ok, err := h.cache.GetAvailableOrders(ctx)
		if err == nil && ok {
			responses := make([]OrderResponse, 0, len(cached))
			for _, o := range cached {
				responses = append(responses, newOrderResponse(o))
			}
			return responses, nil
		}
		// A broken cache degrades to a database read.
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = ?
		ORDER BY created_at
	`, int(order.StatusPending)).Rows()
	if err != nil {
		return nil, err
	}

	responses, err := scanOrderRows(rows)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.repopulate(ctx, responses)
	}

	return responses, nil
}

// repopulate writes the fresh listing back into the cache. Failures are
// swallowed: the caller already has its answer.
func (h GetAvailableOrdersQueryHandler) repopulate(ctx context.Context, responses []OrderResponse) {
	orders := make([]*order.Order, 0, len(responses))
	for _, resp := range responses {
		restored, err := order.RestoreOrder(
			resp.ID, resp.CustomerID, resp.CustomerEmail,
			resp.Description, resp.Destination,
			resp.DriverID, resp.Status, resp.CreatedAt, resp.UpdatedAt, resp.Version,
		)
		if err != nil {
			return
		}
		orders = append(orders, restored)
	}

	_ = h.cache.SetAvailableOrders(ctx, orders)
}
