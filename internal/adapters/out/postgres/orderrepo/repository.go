package orderrepo

import (
	"context"
	"errors"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// All mutations after Add go through conditional writes: one UPDATE or DELETE
// filtered on both id and version. Postgres serializes the competing
// statements on the row, so of two writers holding the same version exactly
// one sees a row affected. That single property is what arbitrates concurrent
// claims without any application-level locking.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates modified through this repository.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. The tracker may
// be nil when no unit of work is coordinating the operation.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateConditional writes the aggregate's state if and only if the stored
// row still carries expectedVersion. Zero rows affected means either a
// concurrent writer moved the version or the row is gone; a follow-up read
// distinguishes *errs.VersionConflictError from *errs.ObjectNotFoundError.
func (r *GormOrderRepository) UpdateConditional(
	ctx context.Context,
	aggregate *order.Order,
	expectedVersion int64,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"driver_id":  dto.DriverID,
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
			"version":    dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, aggregate.ID(), expectedVersion)
	}

	r.track(aggregate)
	return nil
}

// Delete removes the order if the stored row still carries expectedVersion.
// Same conflict semantics as UpdateConditional: an order claimed between the
// caller's read and this delete survives.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID, expectedVersion int64) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", id.Bytes(), expectedVersion).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, id, expectedVersion)
	}

	return nil
}

// GetByCustomerID retrieves all orders placed by the customer, newest first.
func (r *GormOrderRepository) GetByCustomerID(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "customer_id = ?", customerID.Bytes())
}

// GetByCustomerEmail retrieves all orders placed under the email, newest first.
func (r *GormOrderRepository) GetByCustomerEmail(ctx context.Context, customerEmail string) ([]*order.Order, error) {
	if customerEmail == "" {
		return nil, errs.NewValueIsRequiredError("customerEmail")
	}

	return r.findAll(ctx, "customer_email = ?", customerEmail)
}

// GetByDriverID retrieves all orders claimed by the driver, newest first.
func (r *GormOrderRepository) GetByDriverID(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "driver_id = ?", driverID.Bytes())
}

// GetByStatus retrieves all orders currently in the given status.
func (r *GormOrderRepository) GetByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "status = ?", int(status))
}

// GetAllPending retrieves all orders available for claiming.
func (r *GormOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	return r.findAll(ctx, "status = ?", int(order.StatusPending))
}

func (r *GormOrderRepository) findAll(ctx context.Context, condition string, arg any) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, condition, arg).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// conflictOrMissing resolves a zero-rows-affected conditional write into
// the right error kind.
func (r *GormOrderRepository) conflictOrMissing(ctx context.Context, id kernel.UUID, expectedVersion int64) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewVersionConflictError(id.String(), expectedVersion)
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}
