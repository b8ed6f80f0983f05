package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID order.CustomerID) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListPendingUnpaidCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
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

type MockTransitionObserver struct{ mock.Mock }

func (m *MockTransitionObserver) ObserveTransition(action string, err error) {
	m.Called(action, err)
}

// newMocks wires a factory that hands out one unit of work bound to repo.
func newMocks() (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}

func vnd(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromInt(amount, "VND")
	require.NoError(t, err)
	return m
}

func validAddress(t *testing.T) order.ShippingAddress {
	t.Helper()
	a, err := order.NewShippingAddress("Nguyen Van A", "0912345678", "12 Ly Thuong Kiet", "Ha Noi", "Hoan Kiem", "Hang Bai")
	require.NoError(t, err)
	return a
}

func validItem(t *testing.T, sku string, qty int, price int64) commands.OrderItem {
	t.Helper()
	product, err := order.NewProductDetail(order.ProductDetailParams{Name: "Product " + sku})
	require.NoError(t, err)
	item, err := commands.NewOrderItem(sku, qty, vnd(t, price), product)
	require.NoError(t, err)
	return item
}

func validCreateParams(t *testing.T) commands.CreateOrderParams {
	t.Helper()
	return commands.CreateOrderParams{
		UserID:          "u1",
		Code:            "ORD-1",
		ReceiverName:    "A",
		ReceiverPhone:   "0912345678",
		ShippingAddress: validAddress(t),
		Items:           []commands.OrderItem{validItem(t, "S1", 2, 50000)},
		ShippingFee:     vnd(t, 10000),
	}
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	id := order.NewOrderID()
	product, err := order.NewProductDetail(order.ProductDetailParams{Name: "Product S1"})
	require.NoError(t, err)
	detail, err := order.NewOrderDetail(id.String(), "S1", 2, vnd(t, 50000), product)
	require.NoError(t, err)
	o, err := order.Create(order.CreateParams{
		ID:              id,
		UserID:          "u1",
		Code:            "ORD-1",
		ShippingAddress: validAddress(t),
		ReceiverName:    "A",
		ReceiverPhone:   "0912345678",
		OrderDetails:    []order.OrderDetail{detail},
		ShippingFee:     vnd(t, 10000),
	})
	require.NoError(t, err)
	return o
}

// orderWith matches the updated aggregate passed to the repository.
func orderWith(status order.Status, payment order.PaymentStatus) any {
	return mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == status && o.PaymentStatus() == payment
	})
}
