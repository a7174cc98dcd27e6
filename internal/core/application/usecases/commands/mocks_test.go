package commands_test

import (
	"context"
	"errors"
	"sync"

	"pedidos/internal/core/application/usecases/commands"
	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/core/ports"
	"pedidos/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateConditional(
	ctx context.Context, o *order.Order, expectedVersion int64,
) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID, expectedVersion int64) error {
	args := m.Called(ctx, id, expectedVersion)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByCustomerID(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetByCustomerEmail(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetByDriverID(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetByStatus(_ context.Context, _ order.Status) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllPending(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderCache struct{ mock.Mock }

func (m *MockOrderCache) SetAvailableOrders(ctx context.Context, orders []*order.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderCache) GetAvailableOrders(ctx context.Context) ([]*order.Order, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Bool(1), args.Error(2)
}

func (m *MockOrderCache) InvalidateAvailableOrders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeOrderStore is an in-memory store whose UpdateConditional and Delete
// honor the compare-and-swap contract under a mutex, mirroring what the
// postgres adapter does with a conditional UPDATE. It backs the concurrency
// tests, where mock expectations cannot express interleavings.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*storedOrder
}

type storedOrder struct {
	snapshot *order.Order
	version  int64
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*storedOrder)}
}

// restore produces an isolated aggregate copy, the way a repository would
// rehydrate a row. Sharing *order.Order between racing goroutines would let
// the race happen inside the aggregate instead of at the store.
func (s *storedOrder) restore() (*order.Order, error) {
	o := s.snapshot
	return order.RestoreOrder(
		o.ID(), o.CustomerID(), o.CustomerEmail(), o.Description(), o.Destination(),
		o.Driver(), o.Status(), o.CreatedAt(), o.UpdatedAt(), s.version,
	)
}

func (s *fakeOrderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = &storedOrder{snapshot: o, version: o.Version()}
	return nil
}

func (s *fakeOrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return stored.restore()
}

func (s *fakeOrderStore) UpdateConditional(
	_ context.Context, o *order.Order, expectedVersion int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[o.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", o.ID().String())
	}
	if stored.version != expectedVersion {
		return errs.NewVersionConflictError(o.ID().String(), expectedVersion)
	}

	stored.snapshot = o
	stored.version = o.Version()
	return nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id kernel.UUID, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id.String()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}
	if stored.version != expectedVersion {
		return errs.NewVersionConflictError(id.String(), expectedVersion)
	}

	delete(s.orders, id.String())
	return nil
}

func (s *fakeOrderStore) GetByCustomerID(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in fake")
}

func (s *fakeOrderStore) GetByCustomerEmail(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, errors.New("not implemented in fake")
}

func (s *fakeOrderStore) GetByDriverID(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in fake")
}

func (s *fakeOrderStore) GetByStatus(_ context.Context, _ order.Status) ([]*order.Order, error) {
	return nil, errors.New("not implemented in fake")
}

func (s *fakeOrderStore) GetAllPending(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in fake")
}

// fakeUoW is a no-op transaction wrapper over fakeOrderStore; the fake store
// applies each conditional write atomically on its own.
type fakeUoW struct {
	store *fakeOrderStore
}

func (u *fakeUoW) Begin(context.Context) error            { return nil }
func (u *fakeUoW) Commit(context.Context) error           { return nil }
func (u *fakeUoW) Rollback(context.Context) error         { return nil }
func (u *fakeUoW) OrderRepository() ports.OrderRepository { return u.store }

type fakeUoWFactory struct {
	store *fakeOrderStore
}

func (f *fakeUoWFactory) Create() commands.OrderUoW {
	return &fakeUoW{store: f.store}
}

// noopCache satisfies ports.OrderCache for tests that do not assert on
// cache interaction.
type noopCache struct{}

func (noopCache) SetAvailableOrders(context.Context, []*order.Order) error { return nil }
func (noopCache) GetAvailableOrders(context.Context) ([]*order.Order, bool, error) {
	return nil, false, nil
}
func (noopCache) InvalidateAvailableOrders(context.Context) error { return nil }
