package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places new orders in PENDING status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(params)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the aggregate from the command and persists it.
// The aggregate is built before the transaction starts; invalid orders never open one.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := buildOrder(cmd)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildOrder(cmd CreateOrderCommand) (*order.Order, error) {
	items := cmd.Items()
	details := make([]order.OrderDetail, 0, len(items))
	for _, item := range items {
		detail, err := item.toOrderDetail(cmd.OrderID())
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return order.Create(order.CreateParams{
		ID:              cmd.OrderID(),
		UserID:          cmd.UserID(),
		Code:            cmd.Code(),
		ShippingAddress: cmd.ShippingAddress(),
		ReceiverName:    cmd.ReceiverName(),
		ReceiverPhone:   cmd.ReceiverPhone(),
		OrderDetails:    details,
		ShippingFee:     cmd.ShippingFee(),
		Discount:        cmd.Discount(),
		Note:            cmd.Note(),
	})
}
