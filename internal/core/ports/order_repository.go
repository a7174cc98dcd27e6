// Package ports defines the contracts between the application core and its
// adapters. The core depends only on these interfaces; concrete storage and
// caching implementations live under internal/adapters.
package ports

import (
	"context"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The conditional-write primitives are load-bearing: they are the only
// mutation path, and the version check is what arbitrates concurrent writers
// without any application-level locking.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns *errs.ObjectNotFoundError for unknown identifiers.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateConditional persists the aggregate's current state only if the
	// stored record still carries expectedVersion (compare-and-swap on the
	// version column). Returns *errs.VersionConflictError when another writer
	// committed first, *errs.ObjectNotFoundError when the record is gone.
	UpdateConditional(ctx context.Context, aggregate *order.Order, expectedVersion int64) error

	// Delete removes the order only if the stored record still carries
	// expectedVersion. Same conflict semantics as UpdateConditional.
	Delete(ctx context.Context, id kernel.UUID, expectedVersion int64) error

	// GetByCustomerID retrieves all orders placed by the customer.
	GetByCustomerID(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetByCustomerEmail retrieves all orders placed under the email address.
	GetByCustomerEmail(ctx context.Context, customerEmail string) ([]*order.Order, error)

	// GetByDriverID retrieves all orders claimed by the driver.
	GetByDriverID(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)

	// GetByStatus retrieves all orders currently in the given status.
	GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAllPending retrieves all orders available for claiming.
	GetAllPending(ctx context.Context) ([]*order.Order, error)
}
