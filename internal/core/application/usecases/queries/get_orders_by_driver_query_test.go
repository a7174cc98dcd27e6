package queries_test

import (
	"testing"

	"pedidos/internal/core/application/usecases/queries"
	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersByDriverQuery_Valid(t *testing.T) {
	driverID := kernel.NewUUID()

	query, err := queries.NewGetOrdersByDriverQuery(driverID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.DriverID().IsEqual(driverID))
}

func TestNewGetOrdersByDriverQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetOrdersByDriverQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrdersByDriverQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrdersByDriverQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrdersByDriverQueryIsNotConstructed)
}

func TestNewGetOrdersByStatusQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrdersByStatusQuery(order.StatusDelivered)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, order.StatusDelivered, query.Status())
}

func TestNewGetOrdersByStatusQuery_UnknownStatus(t *testing.T) {
	_, err := queries.NewGetOrdersByStatusQuery(order.StatusUnknown)
	require.Error(t, err)
}

func TestGetOrdersByStatusQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrdersByStatusQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrdersByStatusQueryIsNotConstructed)
}
