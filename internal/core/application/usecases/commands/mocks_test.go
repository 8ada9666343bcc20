package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status *order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByAssignedAdmin(ctx context.Context, adminID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CompareAndSetStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Get(ctx context.Context, id kernel.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

type MockDeliveryDispatcher struct{ mock.Mock }

func (m *MockDeliveryDispatcher) CreateDelivery(
	ctx context.Context,
	o *order.Order,
	customer *identity.User,
) ports.DispatchResult {
	args := m.Called(ctx, o, customer)
	return args.Get(0).(ports.DispatchResult)
}

func (m *MockDeliveryDispatcher) GetStatus(ctx context.Context, trackingIDs []string) (ports.DeliveryStatuses, error) {
	args := m.Called(ctx, trackingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.DeliveryStatuses), args.Error(1)
}

func (m *MockDeliveryDispatcher) UpdateStatus(ctx context.Context, trackingIDs []string, newStatus string) bool {
	args := m.Called(ctx, trackingIDs, newStatus)
	return args.Bool(0)
}

// recorderSpy keeps every observation for assertions.
type recorderSpy struct {
	mu          sync.Mutex
	transitions []string
	dispatches  []string
}

func (r *recorderSpy) ObserveTransition(event, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, event+":"+result)
}

func (r *recorderSpy) ObserveDispatch(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatches = append(r.dispatches, outcome)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func fixedClock() func() time.Time {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func newStaff(t *testing.T, region string, roles ...identity.Role) *identity.User {
	t.Helper()
	if len(roles) == 0 {
		roles = []identity.Role{identity.RoleAdmin}
	}
	u, err := identity.NewUser(kernel.NewUUID(), "Karim Staff", "staff@example.com", "0661000000", region, roles...)
	require.NoError(t, err)
	return u
}

func newCustomerUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser(kernel.NewUUID(), "Sara Customer", "sara@example.com", "0770111222", "Oran")
	require.NoError(t, err)
	return u
}

func newProduct(t *testing.T, title string, price float64, stock int) *catalog.Product {
	t.Helper()
	amount, err := kernel.MoneyFromFloat(price)
	require.NoError(t, err)
	p, err := catalog.NewProduct(kernel.NewUUID(), title, amount, stock)
	require.NoError(t, err)
	return p
}

func newTestOrder(t *testing.T, deliveryType order.DeliveryType) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromFloat(500)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Notebook", price, 2)
	require.NoError(t, err)
	guest, err := order.GuestCustomer(order.GuestProfile{Name: "Amina", Phone: "0550123456"})
	require.NoError(t, err)

	delivery := order.DeliveryDetails{Type: deliveryType}
	if deliveryType == order.Delivery {
		delivery.Address = "12 rue Didouche Mourad"
		delivery.Phone = "0550123456"
		delivery.Region = "Alger"
	}
	o, err := order.NewOrder(kernel.NewUUID(), guest, []order.Item{item}, delivery, time.Now())
	require.NoError(t, err)
	return o
}

// newTestOrderIn builds an order already moved through the given steps.
func newTestOrderIn(t *testing.T, deliveryType order.DeliveryType, status order.Status, admin kernel.UUID) *order.Order {
	t.Helper()
	o := newTestOrder(t, deliveryType)
	switch status {
	case order.Pending:
	case order.Accepted:
		require.NoError(t, o.Accept(admin))
	case order.Declined:
		require.NoError(t, o.Decline(admin))
	case order.Ready:
		require.NoError(t, o.Accept(admin))
		require.NoError(t, o.MarkReady(admin))
	case order.OutForDelivery:
		require.NoError(t, o.Accept(admin))
		require.NoError(t, o.MarkReady(admin))
		require.NoError(t, o.ShipOut("ORDER_test_202503140930"))
	default:
		t.Fatalf("unsupported status %s", status)
	}
	return o
}

// transitionMocks wires a factory whose single unit of work follows the
// Begin, Get, CompareAndSetStatus, Commit sequence of a staff transition.
func transitionMocks(ctx context.Context, o *order.Order, expected order.Status, casErr error) (*MockUoWFactory, *MockUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("CompareAndSetStatus", ctx, o, expected).Return(casErr).Once()
	if casErr == nil {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	return factory, uow, repo
}
