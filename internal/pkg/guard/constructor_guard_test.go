package guard_test

import (
	"errors"
	"testing"

	"pedidos/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := g.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("properly_constructed_guard_accepts_nil_error", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	require.Error(t, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a guarded value object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type claimRequest struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	var errClaimNotConstructed = errors.New("claimRequest must be created via newClaimRequest")

	newClaimRequest := func(orderID string) (claimRequest, error) {
		if orderID == "" {
			return claimRequest{}, errors.New("orderID is required")
		}
		return claimRequest{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		req, err := newClaimRequest("order-1")
		require.NoError(t, err)
		require.NoError(t, req.guard.Validate(errClaimNotConstructed))
		assert.Equal(t, "order-1", req.orderID)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var req claimRequest
		err := req.guard.Validate(errClaimNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errClaimNotConstructed, err)
	})
}

// TestConstructorGuardConcurrency verifies that a guard is safe for concurrent reads.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 1000 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}
