package ports

import (
	"context"

	"pedidos/internal/core/domain/model/order"
)

// OrderCache is a read-side cache for the list of orders available for
// claiming. It is strictly advisory: a cached snapshot may be stale the
// moment it is read, and claim arbitration never consults it. Command
// handlers invalidate it after successful writes; a background job
// repopulates it.
type OrderCache interface {
	// SetAvailableOrders replaces the cached snapshot of pending orders.
	SetAvailableOrders(ctx context.Context, orders []*order.Order) error

	// GetAvailableOrders returns the cached snapshot. The second result is
	// false on a cache miss.
	GetAvailableOrders(ctx context.Context) ([]*order.Order, bool, error)

	// InvalidateAvailableOrders drops the cached snapshot.
	InvalidateAvailableOrders(ctx context.Context) error
}
