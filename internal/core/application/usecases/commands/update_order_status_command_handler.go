package commands

import (
	"context"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/core/ports"
	"pedidos/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves orders along the lifecycle graph.
// The handler checks three things in order: the order exists, the requested
// edge is legal, and the caller has rights over it. The write itself is a
// single conditional update; a version conflict is surfaced to the caller
// rather than retried, because a conflicting status update means the caller
// acted on stale state and should re-read before trying again.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the status update and returns the updated order.
//
// Error kinds:
//   - *errs.ObjectNotFoundError: unknown order
//   - *errs.InvalidTransitionError: the requested edge is not in the graph
//   - *errs.UnauthorizedError: the caller lacks rights over the transition
//   - *errs.VersionConflictError: a concurrent writer committed first
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	target, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Transition legality first: a caller who requests an impossible edge
	// learns that even if they also lack rights.
	if !target.Status().CanTransitionTo(cmd.NewStatus()) || cmd.NewStatus() == order.StatusAssigned {
		return nil, errs.NewInvalidTransitionError(target.Status().String(), cmd.NewStatus().String())
	}

	if err = authorizeTransition(target, cmd.NewStatus(), cmd.Caller()); err != nil {
		return nil, err
	}

	expectedVersion := target.Version()
	if err = target.TransitionTo(cmd.NewStatus()); err != nil {
		return nil, err
	}

	if err = repo.UpdateConditional(ctx, target, expectedVersion); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.InvalidateAvailableOrders(ctx)
	}

	return target, nil
}

// authorizeTransition decides whether the caller may perform the transition.
//
// Rules:
//   - The system role may perform any legal transition.
//   - Post-assignment progress (IN_TRANSIT, DELIVERED) requires the assigned driver.
//   - Cancelling a pending order requires the owning customer.
//   - Cancelling an assigned order requires the owning customer or the
//     assigned driver.
func authorizeTransition(target *order.Order, newStatus order.Status, caller kernel.Caller) error {
	if caller.IsSystem() {
		return nil
	}

	deny := func() error {
		return errs.NewUnauthorizedError(caller.ID().String(),
			"transition order to "+newStatus.String())
	}

	isAssignedDriver := caller.IsDriver() &&
		target.Driver() != nil && target.Driver().IsEqual(caller.ID())
	isOwningCustomer := caller.IsCustomer() && target.CustomerID().IsEqual(caller.ID())

	switch newStatus {
	case order.StatusInTransit, order.StatusDelivered:
		if !isAssignedDriver {
			return deny()
		}
	case order.StatusCancelled:
		if target.Status() == order.StatusPending {
			if !isOwningCustomer {
				return deny()
			}
		} else if !isOwningCustomer && !isAssignedDriver {
			return deny()
		}
	default:
		return deny()
	}

	return nil
}
