package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

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

func validProduct(t *testing.T, name string) order.ProductDetail {
	t.Helper()
	p, err := order.NewProductDetail(order.ProductDetailParams{Name: name})
	require.NoError(t, err)
	return p
}

func newDetail(t *testing.T, orderID order.OrderID, sku string, qty int, price int64) order.OrderDetail {
	t.Helper()
	d, err := order.NewOrderDetail(orderID.String(), sku, qty, vnd(t, price), validProduct(t, "Product "+sku))
	require.NoError(t, err)
	return d
}

// newPendingOrder builds the order of the placement scenario:
// one line S1 × 2 at 50000 VND plus a 10000 VND shipping fee.
func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	id := order.NewOrderID()
	o, err := order.Create(order.CreateParams{
		ID:              id,
		UserID:          "u1",
		Code:            "ORD-1",
		ShippingAddress: validAddress(t),
		ReceiverName:    "A",
		ReceiverPhone:   "0912345678",
		OrderDetails:    []order.OrderDetail{newDetail(t, id, "S1", 2, 50000)},
		ShippingFee:     vnd(t, 10000),
	})
	require.NoError(t, err)
	return o
}

// must fails the test on err; use as must(t)(o.Confirm()).
func must(t *testing.T) func(*order.Order, error) *order.Order {
	t.Helper()
	return func(o *order.Order, err error) *order.Order {
		t.Helper()
		require.NoError(t, err)
		require.NotNil(t, o)
		return o
	}
}

// requireTotalInvariant checks totalAmount == subtotal + shippingFee.
func requireTotalInvariant(t *testing.T, o *order.Order) {
	t.Helper()
	expected, err := kernel.ZeroMoney(o.ShippingFee().Currency())
	require.NoError(t, err)
	for _, d := range o.OrderDetails() {
		line, err := d.TotalPrice()
		require.NoError(t, err)
		expected, err = expected.Add(line)
		require.NoError(t, err)
	}
	expected, err = expected.Add(o.ShippingFee())
	require.NoError(t, err)
	require.True(t, expected.IsEqual(o.TotalAmount()), "expected %s, got %s", expected, o.TotalAmount())
}
