// Package steps binds the order lifecycle feature to the domain model.
package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/cucumber/godog"
)

type orderLifecycleFeature struct {
	current *order.Order
	lastErr error
}

func (f *orderLifecycleFeature) reset(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
	f.current = nil
	f.lastErr = nil
	return ctx, nil
}

func (f *orderLifecycleFeature) aPendingOrder(code, userID string, qty int, sku string, price, fee int64) error {
	unitPrice, err := kernel.NewMoneyFromInt(price, "VND")
	if err != nil {
		return err
	}
	shippingFee, err := kernel.NewMoneyFromInt(fee, "VND")
	if err != nil {
		return err
	}
	address, err := order.NewShippingAddress(
		"Nguyen Van A", "0912345678", "12 Ly Thuong Kiet", "Ha Noi", "Hoan Kiem", "Hang Bai",
	)
	if err != nil {
		return err
	}

	id := order.NewOrderID()
	detail, err := f.newDetail(id, sku, qty, unitPrice)
	if err != nil {
		return err
	}

	f.current, err = order.Create(order.CreateParams{
		ID:              id,
		UserID:          userID,
		Code:            code,
		ShippingAddress: address,
		ReceiverName:    "A",
		ReceiverPhone:   "0912345678",
		OrderDetails:    []order.OrderDetail{detail},
		ShippingFee:     shippingFee,
	})
	return err
}

func (f *orderLifecycleFeature) newDetail(
	id order.OrderID, sku string, qty int, price kernel.Money,
) (order.OrderDetail, error) {
	product, err := order.NewProductDetail(order.ProductDetailParams{Name: "Product " + sku})
	if err != nil {
		return order.OrderDetail{}, err
	}
	return order.NewOrderDetail(id.String(), sku, qty, price, product)
}

// apply runs one lifecycle step; the order is replaced only when the step succeeds.
func (f *orderLifecycleFeature) apply(step func(*order.Order) (*order.Order, error)) error {
	if f.lastErr != nil {
		return fmt.Errorf("an earlier step already failed: %w", f.lastErr)
	}

	next, err := step(f.current)
	if err != nil {
		f.lastErr = err
		return nil
	}
	f.current = next
	return nil
}

func (f *orderLifecycleFeature) theOrderIsConfirmed() error  { return f.apply((*order.Order).Confirm) }
func (f *orderLifecycleFeature) theOrderIsMarkedPaid() error { return f.apply((*order.Order).MarkAsPaid) }
func (f *orderLifecycleFeature) theOrderIsShipped() error    { return f.apply((*order.Order).Ship) }
func (f *orderLifecycleFeature) theOrderIsDelivered() error  { return f.apply((*order.Order).Deliver) }
func (f *orderLifecycleFeature) theOrderIsCancelled() error  { return f.apply((*order.Order).Cancel) }

func (f *orderLifecycleFeature) aLineIsAdded(qty int, sku string, price int64) error {
	unitPrice, err := kernel.NewMoneyFromInt(price, "VND")
	if err != nil {
		return err
	}
	detail, err := f.newDetail(f.current.ID(), sku, qty, unitPrice)
	if err != nil {
		return err
	}
	return f.apply(func(o *order.Order) (*order.Order, error) {
		return o.AddOrderDetail(detail)
	})
}

func (f *orderLifecycleFeature) moneyIsAdded(amount int64, currency string, baseAmount int64, baseCurrency string) error {
	addend, err := kernel.NewMoneyFromInt(amount, currency)
	if err != nil {
		return err
	}
	base, err := kernel.NewMoneyFromInt(baseAmount, baseCurrency)
	if err != nil {
		return err
	}
	_, f.lastErr = base.Add(addend)
	return nil
}

func (f *orderLifecycleFeature) theOrderTotalIs(expected string) error {
	if got := f.current.TotalAmount().String(); got != expected {
		return fmt.Errorf("expected total %s, got %s", expected, got)
	}
	return nil
}

func (f *orderLifecycleFeature) theOrderStatusIs(expected string) error {
	if got := f.current.Status().String(); got != expected {
		return fmt.Errorf("expected status %s, got %s", expected, got)
	}
	return nil
}

func (f *orderLifecycleFeature) thePaymentStatusIs(expected string) error {
	if got := f.current.PaymentStatus().String(); got != expected {
		return fmt.Errorf("expected payment status %s, got %s", expected, got)
	}
	return nil
}

func (f *orderLifecycleFeature) theOrderHasLines(expected int) error {
	if got := len(f.current.OrderDetails()); got != expected {
		return fmt.Errorf("expected %d lines, got %d", expected, got)
	}
	return nil
}

func (f *orderLifecycleFeature) failsWith(target error) error {
	if !errors.Is(f.lastErr, target) {
		return fmt.Errorf("expected %v, got %v", target, f.lastErr)
	}
	return nil
}

func (f *orderLifecycleFeature) failsWithInvalidState(reason string) error {
	if err := f.failsWith(errs.ErrInvalidState); err != nil {
		return err
	}
	if !strings.Contains(f.lastErr.Error(), reason) {
		return fmt.Errorf("expected %q in %q", reason, f.lastErr.Error())
	}
	return nil
}

func (f *orderLifecycleFeature) failsWithDuplicate() error {
	return f.failsWith(errs.ErrValueIsDuplicate)
}

func (f *orderLifecycleFeature) failsWithCurrencyMismatch() error {
	return f.failsWith(errs.ErrCurrencyMismatch)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &orderLifecycleFeature{}
	ctx.Before(f.reset)

	ctx.Step(`^a pending order "([^"]*)" for user "([^"]*)" with (\d+) units? of "([^"]*)" at (\d+) VND and a shipping fee of (\d+) VND$`,
		f.aPendingOrder)

	ctx.Step(`^the order is confirmed$`, f.theOrderIsConfirmed)
	ctx.Step(`^the order is marked as paid$`, f.theOrderIsMarkedPaid)
	ctx.Step(`^the order is shipped$`, f.theOrderIsShipped)
	ctx.Step(`^the order is delivered$`, f.theOrderIsDelivered)
	ctx.Step(`^the order is cancelled$`, f.theOrderIsCancelled)
	ctx.Step(`^(\d+) units? of "([^"]*)" at (\d+) VND is added to the order$`, f.aLineIsAdded)
	ctx.Step(`^(\d+) ([A-Z]{3}) is added to (\d+) ([A-Z]{3})$`, f.moneyIsAdded)

	ctx.Step(`^the order total is "([^"]*)"$`, f.theOrderTotalIs)
	ctx.Step(`^the order status is "([^"]*)"$`, f.theOrderStatusIs)
	ctx.Step(`^the payment status is "([^"]*)"$`, f.thePaymentStatusIs)
	ctx.Step(`^the order has (\d+) lines?$`, f.theOrderHasLines)
	ctx.Step(`^the action fails with an invalid state error "([^"]*)"$`, f.failsWithInvalidState)
	ctx.Step(`^the action fails with a duplicate error$`, f.failsWithDuplicate)
	ctx.Step(`^the action fails with a currency mismatch error$`, f.failsWithCurrencyMismatch)
}
