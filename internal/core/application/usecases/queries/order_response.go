package queries

import (
	"database/sql"
	"time"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// orderColumns is the projection shared by every order query. Keeping the
// column list in one place keeps the scan order and the SQL in sync.
const orderColumns = `
		id,
		customer_id,
		customer_email,
		description,
		destination,
		driver_id,
		status,
		created_at,
		updated_at,
		version
`

// OrderResponse is the flat read model of an order. DriverID is nil while no
// driver has claimed the order.
type OrderResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	CustomerEmail string
	Description   string
	Destination   string
	DriverID      *kernel.UUID
	Status        order.Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// scanOrderRow reads one row of the orderColumns projection.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp     OrderResponse
		id       uuid.UUID
		customer uuid.UUID
		driver   uuid.NullUUID
		status   int
	)

	err := rows.Scan(
		&id,
		&customer,
		&resp.CustomerEmail,
		&resp.Description,
		&resp.Destination,
		&driver,
		&status,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&resp.Version,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customer[:]); err != nil {
		return OrderResponse{}, err
	}
	if driver.Valid {
		driverID, idErr := kernel.UUIDFromBytes(driver.UUID[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.DriverID = &driverID
	}

	resp.Status = order.Status(status)
	if err = resp.Status.Validate(); err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}

// scanOrderRows drains a result set of the orderColumns projection.
func scanOrderRows(rows *sql.Rows) ([]OrderResponse, error) {
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// newOrderResponse projects an aggregate into the read model. Used when a
// query is answered from the cache instead of the database.
func newOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID(),
		CustomerID:    o.CustomerID(),
		CustomerEmail: o.CustomerEmail(),
		Description:   o.Description(),
		Destination:   o.Destination(),
		Status:        o.Status(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
	}
	if d := o.Driver(); d != nil {
		driver := *d
		resp.DriverID = &driver
	}
	return resp
}
