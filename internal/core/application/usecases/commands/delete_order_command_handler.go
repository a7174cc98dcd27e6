package commands

import (
	"context"

	"pedidos/internal/core/ports"
	"pedidos/internal/pkg/errs"
)

// DeleteOrderCommandHandler removes orders that are still pending. Anything
// later in the lifecycle is part of the delivery record and cannot be deleted.
// The delete is conditional on the version the order was read with, so an
// order claimed between the read and the delete survives.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, cache ports.OrderCache) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the deletion.
//
// Error kinds:
//   - *errs.ObjectNotFoundError: unknown order
//   - *errs.InvalidStateError: the order is no longer pending
//   - *errs.UnauthorizedError: the caller is neither the owning customer nor the system
//   - *errs.VersionConflictError: a concurrent writer committed first
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	target, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !target.CanBeDeleted() {
		return errs.NewInvalidStateError("delete", target.Status().String())
	}

	caller := cmd.Caller()
	if !caller.IsSystem() && !(caller.IsCustomer() && target.CustomerID().IsEqual(caller.ID())) {
		return errs.NewUnauthorizedError(caller.ID().String(), "delete order")
	}

	if err = repo.Delete(ctx, cmd.OrderID(), target.Version()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.cache != nil {
		_ = h.cache.InvalidateAvailableOrders(ctx)
	}

	return nil
}
