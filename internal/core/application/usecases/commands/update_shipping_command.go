package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrUpdateShippingCommandIsNotConstructed = errors.New(
		"UpdateShippingCommand must be created via NewUpdateShippingCommand constructor",
	)
)

// UpdateShippingCommand replaces the shipping address, the shipping fee or both.
// At least one of them must be given.
type UpdateShippingCommand struct { //nolint:recvcheck //using for validation
	orderID order.OrderID
	address *order.ShippingAddress
	fee     *kernel.Money

	guard guard.ConstructorGuard
}

func NewUpdateShippingCommand(
	orderID order.OrderID,
	address *order.ShippingAddress,
	fee *kernel.Money,
) (UpdateShippingCommand, error) {
	cmd := UpdateShippingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if address == nil && fee == nil {
		return UpdateShippingCommand{}, errs.NewValueIsRequiredError("shippingAddress or shippingFee")
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAddress(address),
		cmd.setFee(fee),
	); err != nil {
		return UpdateShippingCommand{}, err
	}

	return cmd, nil
}

func (c UpdateShippingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShippingCommandIsNotConstructed)
}

func (c UpdateShippingCommand) OrderID() order.OrderID { return c.orderID }

// Address returns the new address, or nil when it is unchanged.
func (c UpdateShippingCommand) Address() *order.ShippingAddress { return c.address }

// Fee returns the new fee, or nil when it is unchanged.
func (c UpdateShippingCommand) Fee() *kernel.Money { return c.fee }

func (c *UpdateShippingCommand) setOrderID(orderID order.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateShippingCommand) setAddress(address *order.ShippingAddress) error {
	if address == nil {
		return nil
	}
	if err := address.Validate(); err != nil {
		return err
	}
	a := *address
	c.address = &a
	return nil
}

func (c *UpdateShippingCommand) setFee(fee *kernel.Money) error {
	if fee == nil {
		return nil
	}
	if err := fee.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingFee", err)
	}
	f := *fee
	c.fee = &f
	return nil
}
