package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// UpdateShippingCommandHandler changes shipping data of an order.
// When both values are given, the address is applied first; either guard failing
// leaves the stored order untouched.
type UpdateShippingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateShippingCommandHandler(uowFactory OrderUoWFactory) UpdateShippingCommandHandler {
	return UpdateShippingCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateShippingCommandHandler) Handle(ctx context.Context, cmd UpdateShippingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return modifyOrder(ctx, h.uowFactory, cmd.OrderID(), func(current *order.Order) (*order.Order, error) {
		next := current
		var err error

		if address := cmd.Address(); address != nil {
			if next, err = next.UpdateShippingAddress(*address); err != nil {
				return nil, err
			}
		}

		if fee := cmd.Fee(); fee != nil {
			if next, err = next.UpdateShippingFee(*fee); err != nil {
				return nil, err
			}
		}

		return next, nil
	})
}
