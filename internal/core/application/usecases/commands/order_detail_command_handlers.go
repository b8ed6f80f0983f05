package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderDetailCommandHandler handles every line-item change of a pending order.
type OrderDetailCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewOrderDetailCommandHandler(uowFactory OrderUoWFactory) OrderDetailCommandHandler {
	return OrderDetailCommandHandler{uowFactory: uowFactory}
}

// HandleAdd binds the item to the order and appends it.
func (h *OrderDetailCommandHandler) HandleAdd(ctx context.Context, cmd AddOrderDetailCommand) (order.OrderDetailID, error) {
	if err := cmd.Validate(); err != nil {
		return order.OrderDetailID{}, err
	}

	detail, err := cmd.Item().toOrderDetail(cmd.OrderID())
	if err != nil {
		return order.OrderDetailID{}, err
	}

	err = modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(current *order.Order) (*order.Order, error) {
		return current.AddOrderDetail(detail)
	})
	if err != nil {
		return order.OrderDetailID{}, err
	}

	return detail.ID(), nil
}

func (h *OrderDetailCommandHandler) HandleRemove(ctx context.Context, cmd RemoveOrderDetailCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(current *order.Order) (*order.Order, error) {
		return current.RemoveOrderDetail(cmd.DetailID())
	})
}

func (h *OrderDetailCommandHandler) HandleUpdateQuantity(ctx context.Context, cmd UpdateOrderDetailQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(current *order.Order) (*order.Order, error) {
		return current.UpdateOrderDetailQuantity(cmd.DetailID(), cmd.Quantity())
	})
}
