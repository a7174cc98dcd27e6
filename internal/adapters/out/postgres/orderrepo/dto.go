// Package orderrepo persists order aggregates with GORM. It maps between the
// domain aggregate and its relational representation, and implements the
// conditional-write primitives the claim arbitration depends on.
package orderrepo

import (
	"time"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. driver_id, the
// customer columns and status are indexed for the listing queries; version
// is the compare-and-swap token checked by every conditional write.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	CustomerEmail string     `gorm:"index"`
	Description   string     `gorm:"not null"`
	Destination   string     `gorm:"not null"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	Status        int        `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64 `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database row.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		CustomerEmail: aggregate.CustomerEmail(),
		Description:   aggregate.Description(),
		Destination:   aggregate.Destination(),
		DriverID:      driverID,
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Version:       aggregate.Version(),
	}
}

// toDomain rehydrates an order aggregate from its database row. RestoreOrder
// revalidates every invariant, so a corrupt row fails here instead of leaking
// an illegal aggregate into the core.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	return order.RestoreOrder(
		id, customerID,
		dto.CustomerEmail, dto.Description, dto.Destination,
		driverID, order.Status(dto.Status),
		dto.CreatedAt, dto.UpdatedAt, dto.Version,
	)
}
