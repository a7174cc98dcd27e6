package commands

import (
	"context"
	"errors"

	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/core/ports"
	"pedidos/internal/pkg/errs"
)

// maxClaimAttempts bounds the read-check-write retry loop. A version conflict
// usually means another driver just won; one or two re-reads distinguish a
// stale read from a truly lost race without hammering the store.
const maxClaimAttempts = 3

// ClaimOrderCommandHandler arbitrates concurrent claim attempts for the same
// order. It guarantees at most one successful claim per order: the winning
// write is a compare-and-swap on the version the order was read with, so two
// drivers can never both commit against the same pending snapshot.
//
// A claim that finds the order already outside PENDING fails immediately with
// *errs.AlreadyClaimedError and wastes no write. A claim whose conditional
// write is rejected re-reads and retries up to maxClaimAttempts times, then
// also surfaces AlreadyClaimedError. Lost races are an expected outcome, not
// a fault.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
}

// NewClaimOrderCommandHandler creates a handler for claim arbitration.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, cache ports.OrderCache) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the claim and returns the claimed order on success.
//
// Error kinds:
//   - *errs.ObjectNotFoundError: the order does not exist
//   - *errs.AlreadyClaimedError: the order left PENDING, either before the
//     first read or during the race
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastConflict error
	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		claimed, err := h.tryClaim(ctx, cmd)
		if err == nil {
			if h.cache != nil {
				_ = h.cache.InvalidateAvailableOrders(ctx)
			}
			return claimed, nil
		}

		if !errors.Is(err, errs.ErrVersionConflict) {
			return nil, err
		}

		// Stale read: someone committed between our read and our write.
		// Re-read and re-check; if the order is still PENDING we race again.
		lastConflict = err
	}

	return nil, errs.NewAlreadyClaimedErrorWithCause(cmd.OrderID().String(), lastConflict)
}

// tryClaim runs one read-check-write cycle inside its own transaction.
func (h ClaimOrderCommandHandler) tryClaim(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	contested, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expectedVersion := contested.Version()

	// Claim fails fast with AlreadyClaimedError when the order is no longer
	// pending, before any write is attempted.
	if err = contested.Claim(cmd.DriverID()); err != nil {
		return nil, err
	}

	if err = repo.UpdateConditional(ctx, contested, expectedVersion); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return contested, nil
}
