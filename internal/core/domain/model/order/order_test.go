package order_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Run("should place a pending order with the computed total", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.True(t, o.TotalAmount().IsEqual(vnd(t, 110000)))
		assert.Equal(t, "110000 VND", o.TotalAmount().String())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.PaymentStatusPending, o.PaymentStatus())
		assert.Equal(t, "u1", o.UserID().String())
		assert.Equal(t, "ORD-1", o.Code().String())
		assert.Len(t, o.OrderDetails(), 1)
		assert.Equal(t, 0, o.Version())
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
		assert.True(t, o.CanBeModified())
	})

	t.Run("should generate an id when none is given", func(t *testing.T) {
		d := newDetail(t, order.NewOrderID(), "S1", 1, 1000)

		o, err := order.Create(order.CreateParams{
			UserID:          "u1",
			Code:            "ORD-2",
			ShippingAddress: validAddress(t),
			ReceiverName:    "A",
			ReceiverPhone:   "0912345678",
			OrderDetails:    []order.OrderDetail{d},
			ShippingFee:     vnd(t, 0),
		})

		require.NoError(t, err)
		require.NoError(t, o.ID().Validate())
		assert.NotEmpty(t, o.ID().String())
	})

	t.Run("should join every missing field into one validation error", func(t *testing.T) {
		o, err := order.Create(order.CreateParams{ShippingFee: vnd(t, 0), ShippingAddress: validAddress(t)})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "value is required: userId")
		assert.Contains(t, err.Error(), "value is required: code")
		assert.Contains(t, err.Error(), "value is required: receiverName")
		assert.Contains(t, err.Error(), "value is required: receiverPhone")
		assert.Contains(t, err.Error(), "value is required: orderDetails")
	})

	t.Run("should fail without a shipping fee", func(t *testing.T) {
		id := order.NewOrderID()

		_, err := order.Create(order.CreateParams{
			ID:              id,
			UserID:          "u1",
			Code:            "ORD-1",
			ShippingAddress: validAddress(t),
			ReceiverName:    "A",
			ReceiverPhone:   "0912345678",
			OrderDetails:    []order.OrderDetail{newDetail(t, id, "S1", 1, 1000)},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "shippingFee")
	})

	t.Run("should fail with duplicate SKUs", func(t *testing.T) {
		id := order.NewOrderID()

		_, err := order.Create(order.CreateParams{
			ID:              id,
			UserID:          "u1",
			Code:            "ORD-1",
			ShippingAddress: validAddress(t),
			ReceiverName:    "A",
			ReceiverPhone:   "0912345678",
			OrderDetails: []order.OrderDetail{
				newDetail(t, id, "S1", 1, 1000),
				newDetail(t, id, "S1", 2, 2000),
			},
			ShippingFee: vnd(t, 0),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsDuplicate)
	})

	t.Run("should fail when line and fee currencies differ", func(t *testing.T) {
		id := order.NewOrderID()
		usdFee, err := kernel.NewMoneyFromInt(5, "USD")
		require.NoError(t, err)

		_, err = order.Create(order.CreateParams{
			ID:              id,
			UserID:          "u1",
			Code:            "ORD-1",
			ShippingAddress: validAddress(t),
			ReceiverName:    "A",
			ReceiverPhone:   "0912345678",
			OrderDetails:    []order.OrderDetail{newDetail(t, id, "S1", 1, 1000)},
			ShippingFee:     usdFee,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrCurrencyMismatch)
	})
}

func TestRehydration(t *testing.T) {
	source := newPendingOrder(t)
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	params := order.RestoreParams{
		ID:              source.ID(),
		UserID:          "u1",
		Code:            "ORD-1",
		Status:          order.StatusShipped,
		PaymentStatus:   order.PaymentStatusPaid,
		ShippingAddress: validAddress(t),
		ReceiverName:    "A",
		ReceiverPhone:   "0912345678",
		OrderDetails:    source.OrderDetails(),
		ShippingFee:     vnd(t, 10000),
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
		Version:         7,
	}

	t.Run("FromExisting should reset both statuses to pending", func(t *testing.T) {
		o, err := order.FromExisting(params)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.PaymentStatusPending, o.PaymentStatus())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.True(t, o.TotalAmount().IsEqual(vnd(t, 110000)))
	})

	t.Run("RestoreOrder should keep the persisted state and version", func(t *testing.T) {
		o, err := order.RestoreOrder(params)

		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, o.Status())
		assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus())
		assert.Equal(t, 7, o.Version())
		assert.True(t, o.IsEqual(source))
		requireTotalInvariant(t, o)
	})

	t.Run("RestoreOrder should reject an unknown status", func(t *testing.T) {
		p := params
		p.Status = order.StatusUnknown

		o, err := order.RestoreOrder(p)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should refuse to ship a confirmed but unpaid order", func(t *testing.T) {
		confirmed := must(t)(newPendingOrder(t).Confirm())
		require.Equal(t, order.StatusConfirmed, confirmed.Status())

		shipped, err := confirmed.Ship()

		require.Error(t, err)
		assert.Nil(t, shipped)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "cannot ship unpaid orders")
	})

	t.Run("should ship a confirmed and paid order then deliver it", func(t *testing.T) {
		o := must(t)(newPendingOrder(t).Confirm())
		o = must(t)(o.MarkAsPaid())
		o = must(t)(o.Ship())
		assert.Equal(t, order.StatusShipped, o.Status())

		o = must(t)(o.Deliver())
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.True(t, o.IsInFinalState())
	})

	t.Run("ship should succeed only for confirmed and paid", func(t *testing.T) {
		statuses := []order.Status{
			order.StatusPending, order.StatusConfirmed, order.StatusProcessing, order.StatusShipped,
			order.StatusDelivered, order.StatusCancelled, order.StatusReturned,
		}
		payments := []order.PaymentStatus{
			order.PaymentStatusPending, order.PaymentStatusPaid, order.PaymentStatusFailed,
			order.PaymentStatusRefunded, order.PaymentStatusPartiallyRefunded,
		}
		source := newPendingOrder(t)

		for _, s := range statuses {
			for _, p := range payments {
				o := restoreWith(t, source, s, p)

				shipped, err := o.Ship()

				if s == order.StatusConfirmed && p == order.PaymentStatusPaid {
					require.NoError(t, err)
					assert.Equal(t, order.StatusShipped, shipped.Status())
					continue
				}
				require.Error(t, err, "%s/%s", s, p)
				assert.ErrorIs(t, err, errs.ErrInvalidState)
			}
		}
	})

	t.Run("confirm should fail unless pending", func(t *testing.T) {
		o := must(t)(newPendingOrder(t).Confirm())

		_, err := o.Confirm()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "only pending orders can be confirmed")
	})

	t.Run("deliver should fail unless shipped", func(t *testing.T) {
		_, err := newPendingOrder(t).Deliver()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestOrder_Cancel(t *testing.T) {
	source := newPendingOrder(t)

	t.Run("should cancel from every status but delivered and cancelled", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusPending, order.StatusConfirmed, order.StatusProcessing,
			order.StatusShipped, order.StatusReturned,
		} {
			cancelled, err := restoreWith(t, source, s, order.PaymentStatusPending).Cancel()

			require.NoError(t, err, s.String())
			assert.Equal(t, order.StatusCancelled, cancelled.Status())
		}
	})

	t.Run("should refuse to cancel a delivered order", func(t *testing.T) {
		_, err := restoreWith(t, source, order.StatusDelivered, order.PaymentStatusPaid).Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "cannot cancel delivered orders")
	})

	t.Run("should refuse to cancel twice", func(t *testing.T) {
		cancelled := must(t)(source.Cancel())

		_, err := cancelled.Cancel()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order is already cancelled")
	})
}

func TestOrder_Payment(t *testing.T) {
	t.Run("marking as paid twice should fail the second time", func(t *testing.T) {
		paid := must(t)(newPendingOrder(t).MarkAsPaid())
		assert.Equal(t, order.PaymentStatusPaid, paid.PaymentStatus())

		_, err := paid.MarkAsPaid()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "order is already paid")
	})

	t.Run("should refuse payment for a cancelled order", func(t *testing.T) {
		cancelled := must(t)(newPendingOrder(t).Cancel())

		_, err := cancelled.MarkAsPaid()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot pay for cancelled orders")
	})

	t.Run("should mark a failed payment once", func(t *testing.T) {
		failed := must(t)(newPendingOrder(t).MarkPaymentAsFailed())
		assert.Equal(t, order.PaymentStatusFailed, failed.PaymentStatus())

		_, err := failed.MarkPaymentAsFailed()
		require.Error(t, err)

		paid := must(t)(failed.MarkAsPaid())
		assert.Equal(t, order.PaymentStatusPaid, paid.PaymentStatus())
	})
}

func TestOrder_OrderDetails(t *testing.T) {
	t.Run("should add a line and recompute the total", func(t *testing.T) {
		o := newPendingOrder(t)

		updated := must(t)(o.AddOrderDetail(newDetail(t, o.ID(), "S2", 3, 20000)))

		assert.Len(t, updated.OrderDetails(), 2)
		assert.True(t, updated.TotalAmount().IsEqual(vnd(t, 170000)))
		requireTotalInvariant(t, updated)
	})

	t.Run("should reject a duplicate SKU and leave the order unchanged", func(t *testing.T) {
		o := newPendingOrder(t)

		updated, err := o.AddOrderDetail(newDetail(t, o.ID(), "S1", 1, 1000))

		require.Error(t, err)
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, errs.ErrValueIsDuplicate)
		assert.Len(t, o.OrderDetails(), 1)
		assert.True(t, o.TotalAmount().IsEqual(vnd(t, 110000)))
	})

	t.Run("should only change lines while pending", func(t *testing.T) {
		confirmed := must(t)(newPendingOrder(t).Confirm())
		line := confirmed.OrderDetails()[0]

		_, addErr := confirmed.AddOrderDetail(newDetail(t, confirmed.ID(), "S2", 1, 1000))
		_, removeErr := confirmed.RemoveOrderDetail(line.ID())
		_, updateErr := confirmed.UpdateOrderDetailQuantity(line.ID(), 5)

		for _, err := range []error{addErr, removeErr, updateErr} {
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidState)
		}
		assert.False(t, confirmed.CanBeModified())
	})

	t.Run("should remove a line but never the last one", func(t *testing.T) {
		o := newPendingOrder(t)
		o = must(t)(o.AddOrderDetail(newDetail(t, o.ID(), "S2", 1, 5000)))
		first := o.OrderDetails()[0]

		o = must(t)(o.RemoveOrderDetail(first.ID()))
		require.Len(t, o.OrderDetails(), 1)
		requireTotalInvariant(t, o)

		_, err := o.RemoveOrderDetail(o.OrderDetails()[0].ID())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Len(t, o.OrderDetails(), 1)
	})

	t.Run("should report a missing line as not found", func(t *testing.T) {
		o := newPendingOrder(t)

		_, removeErr := o.RemoveOrderDetail(order.NewOrderDetailID())
		_, updateErr := o.UpdateOrderDetailQuantity(order.NewOrderDetailID(), 2)

		assert.ErrorIs(t, removeErr, errs.ErrObjectNotFound)
		assert.ErrorIs(t, updateErr, errs.ErrObjectNotFound)
	})

	t.Run("should update a quantity and recompute the total", func(t *testing.T) {
		o := newPendingOrder(t)
		line := o.OrderDetails()[0]

		updated := must(t)(o.UpdateOrderDetailQuantity(line.ID(), 5))

		found, ok := updated.FindOrderDetail(line.ID())
		require.True(t, ok)
		assert.Equal(t, 5, found.Quantity())
		assert.True(t, updated.TotalAmount().IsEqual(vnd(t, 260000)))
	})

	t.Run("should delegate quantity validation to the line", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := o.UpdateOrderDetailQuantity(o.OrderDetails()[0].ID(), order.MaxQuantity+1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_Shipping(t *testing.T) {
	t.Run("should change the address while pending or confirmed", func(t *testing.T) {
		next, err := order.NewShippingAddress("B", "+84987654321", "1 Hai Ba Trung", "Ho Chi Minh", "Quan 1", "Ben Nghe")
		require.NoError(t, err)
		o := newPendingOrder(t)

		updated := must(t)(o.UpdateShippingAddress(next))
		assert.True(t, updated.ShippingAddress().IsEqual(next))

		confirmed := must(t)(o.Confirm())
		must(t)(confirmed.UpdateShippingAddress(next))

		paid := must(t)(confirmed.MarkAsPaid())
		shipped := must(t)(paid.Ship())
		_, err = shipped.UpdateShippingAddress(next)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should change the fee only while pending", func(t *testing.T) {
		o := newPendingOrder(t)

		updated := must(t)(o.UpdateShippingFee(vnd(t, 30000)))
		assert.True(t, updated.TotalAmount().IsEqual(vnd(t, 130000)))
		requireTotalInvariant(t, updated)

		confirmed := must(t)(o.Confirm())
		_, err := confirmed.UpdateShippingFee(vnd(t, 0))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should reject a fee in another currency", func(t *testing.T) {
		usd, err := kernel.NewMoneyFromInt(1, "USD")
		require.NoError(t, err)

		_, err = newPendingOrder(t).UpdateShippingFee(usd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrCurrencyMismatch)
	})
}

func TestOrder_Immutability(t *testing.T) {
	o := newPendingOrder(t)
	before, err := o.Summary()
	require.NoError(t, err)
	line := o.OrderDetails()[0]

	mutations := map[string]func() (*order.Order, error){
		"confirm":        o.Confirm,
		"cancel":         o.Cancel,
		"mark paid":      o.MarkAsPaid,
		"mark failed":    o.MarkPaymentAsFailed,
		"add detail":     func() (*order.Order, error) { return o.AddOrderDetail(newDetail(t, o.ID(), "S9", 1, 100)) },
		"update qty":     func() (*order.Order, error) { return o.UpdateOrderDetailQuantity(line.ID(), 9) },
		"update fee":     func() (*order.Order, error) { return o.UpdateShippingFee(vnd(t, 1)) },
		"update address": func() (*order.Order, error) { return o.UpdateShippingAddress(validAddress(t)) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			next, err := mutate()

			require.NoError(t, err)
			assert.NotSame(t, o, next)
			assert.True(t, next.IsEqual(o))
			assert.False(t, next.UpdatedAt().Before(o.UpdatedAt()))
			assert.Equal(t, o.CreatedAt(), next.CreatedAt())

			after, err := o.Summary()
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Len(t, o.OrderDetails(), 1)
			requireTotalInvariant(t, next)
		})
	}

	t.Run("returned details are copies", func(t *testing.T) {
		details := o.OrderDetails()
		details[0] = newDetail(t, o.ID(), "S7", 1, 1)

		assert.Equal(t, "S1", o.OrderDetails()[0].SkuID().String())
	})
}

func TestOrder_Queries(t *testing.T) {
	source := newPendingOrder(t)

	t.Run("final state covers delivered and cancelled only", func(t *testing.T) {
		expected := map[order.Status]bool{
			order.StatusPending:    false,
			order.StatusConfirmed:  false,
			order.StatusProcessing: false,
			order.StatusShipped:    false,
			order.StatusDelivered:  true,
			order.StatusCancelled:  true,
			order.StatusReturned:   false,
		}
		for s, final := range expected {
			assert.Equal(t, final, restoreWith(t, source, s, order.PaymentStatusPending).IsInFinalState(), s.String())
		}
	})

	t.Run("subtotal excludes the shipping fee", func(t *testing.T) {
		subtotal, err := source.CalculateSubtotal()

		require.NoError(t, err)
		assert.True(t, subtotal.IsEqual(vnd(t, 100000)))
	})

	t.Run("summary renders money as plain text", func(t *testing.T) {
		s, err := source.Summary()

		require.NoError(t, err)
		assert.Equal(t, source.ID().String(), s.OrderID)
		assert.Equal(t, "PENDING", s.Status)
		assert.Equal(t, "PENDING", s.PaymentStatus)
		assert.Equal(t, "110000 VND", s.TotalAmount)
		assert.Equal(t, "100000 VND", s.Subtotal)
		assert.Equal(t, "10000 VND", s.ShippingFee)
		assert.Equal(t, 1, s.ItemCount)
		assert.Equal(t, "A", s.ReceiverName)
	})

	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o *order.Order

		_, err := o.Confirm()

		assert.True(t, errors.Is(err, order.ErrOrderIsNotConstructed))
	})
}

func restoreWith(t *testing.T, source *order.Order, status order.Status, payment order.PaymentStatus) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:              source.ID(),
		UserID:          source.UserID().String(),
		Code:            source.Code().String(),
		Status:          status,
		PaymentStatus:   payment,
		ShippingAddress: source.ShippingAddress(),
		ReceiverName:    source.ReceiverName(),
		ReceiverPhone:   source.ReceiverPhone(),
		OrderDetails:    source.OrderDetails(),
		ShippingFee:     source.ShippingFee(),
		CreatedAt:       source.CreatedAt(),
		UpdatedAt:       source.UpdatedAt(),
		Version:         source.Version(),
	})
	require.NoError(t, err)
	return o
}
