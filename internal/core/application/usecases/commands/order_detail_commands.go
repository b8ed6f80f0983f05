package commands

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrAddOrderDetailCommandIsNotConstructed = errors.New(
		"AddOrderDetailCommand must be created via NewAddOrderDetailCommand constructor",
	)
	ErrRemoveOrderDetailCommandIsNotConstructed = errors.New(
		"RemoveOrderDetailCommand must be created via NewRemoveOrderDetailCommand constructor",
	)
	ErrUpdateOrderDetailQuantityCommandIsNotConstructed = errors.New(
		"UpdateOrderDetailQuantityCommand must be created via NewUpdateOrderDetailQuantityCommand constructor",
	)
)

// AddOrderDetailCommand appends a line to a pending order.
type AddOrderDetailCommand struct { //nolint:recvcheck //using for validation
	orderID order.OrderID
	item    OrderItem

	guard guard.ConstructorGuard
}

func NewAddOrderDetailCommand(orderID order.OrderID, item OrderItem) (AddOrderDetailCommand, error) {
	if err := errors.Join(orderID.Validate(), item.product.Validate()); err != nil {
		return AddOrderDetailCommand{}, err
	}

	return AddOrderDetailCommand{
		orderID: orderID,
		item:    item,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AddOrderDetailCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderDetailCommandIsNotConstructed)
}

func (c AddOrderDetailCommand) OrderID() order.OrderID { return c.orderID }
func (c AddOrderDetailCommand) Item() OrderItem        { return c.item }

// RemoveOrderDetailCommand drops a line from a pending order.
type RemoveOrderDetailCommand struct { //nolint:recvcheck //using for validation
	orderID  order.OrderID
	detailID order.OrderDetailID

	guard guard.ConstructorGuard
}

func NewRemoveOrderDetailCommand(orderID order.OrderID, detailID order.OrderDetailID) (RemoveOrderDetailCommand, error) {
	if err := errors.Join(orderID.Validate(), detailID.Validate()); err != nil {
		return RemoveOrderDetailCommand{}, err
	}

	return RemoveOrderDetailCommand{
		orderID:  orderID,
		detailID: detailID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrderDetailCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderDetailCommandIsNotConstructed)
}

func (c RemoveOrderDetailCommand) OrderID() order.OrderID        { return c.orderID }
func (c RemoveOrderDetailCommand) DetailID() order.OrderDetailID { return c.detailID }

// UpdateOrderDetailQuantityCommand changes the quantity of a line on a pending order.
// Quantity bounds are enforced by the OrderDetail itself.
type UpdateOrderDetailQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID  order.OrderID
	detailID order.OrderDetailID
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateOrderDetailQuantityCommand(
	orderID order.OrderID,
	detailID order.OrderDetailID,
	quantity int,
) (UpdateOrderDetailQuantityCommand, error) {
	if err := errors.Join(orderID.Validate(), detailID.Validate()); err != nil {
		return UpdateOrderDetailQuantityCommand{}, err
	}

	return UpdateOrderDetailQuantityCommand{
		orderID:  orderID,
		detailID: detailID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderDetailQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailQuantityCommandIsNotConstructed)
}

func (c UpdateOrderDetailQuantityCommand) OrderID() order.OrderID        { return c.orderID }
func (c UpdateOrderDetailQuantityCommand) DetailID() order.OrderDetailID { return c.detailID }
func (c UpdateOrderDetailQuantityCommand) Quantity() int                 { return c.quantity }
