package commands

import (
	"context"

	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in PENDING status with no driver, ready for claiming.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and the
// availability cache to invalidate once the new order becomes claimable.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, cache ports.OrderCache) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the order creation command and returns the created order.
// Uses a transaction to ensure the order is properly persisted or rolled back
// on error. The availability cache is invalidated best-effort: a stale cache
// only delays visibility of the new order, it never corrupts claim arbitration.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.CustomerEmail(),
		cmd.Description(),
		cmd.Destination(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.InvalidateAvailableOrders(ctx)
	}

	return newOrder, nil
}
