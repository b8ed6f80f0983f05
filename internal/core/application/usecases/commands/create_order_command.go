package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderItem is one requested line of an order, validated but not yet bound to an order id.
type OrderItem struct {
	skuID     string
	quantity  int
	unitPrice kernel.Money
	product   order.ProductDetail
}

// NewOrderItem validates a requested line.
func NewOrderItem(skuID string, quantity int, unitPrice kernel.Money, product order.ProductDetail) (OrderItem, error) {
	var err error
	if _, skuErr := order.NewProductSku(skuID); skuErr != nil {
		err = errors.Join(err, skuErr)
	}
	if quantity < order.MinQuantity || quantity > order.MaxQuantity {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("quantity", quantity, order.MinQuantity, order.MaxQuantity))
	}
	if priceErr := unitPrice.Validate(); priceErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("unitPrice", priceErr))
	}
	if productErr := product.Validate(); productErr != nil {
		err = errors.Join(err, productErr)
	}
	if err != nil {
		return OrderItem{}, err
	}

	return OrderItem{
		skuID:     strings.TrimSpace(skuID),
		quantity:  quantity,
		unitPrice: unitPrice,
		product:   product,
	}, nil
}

func (i OrderItem) SkuID() string                { return i.skuID }
func (i OrderItem) Quantity() int                { return i.quantity }
func (i OrderItem) UnitPrice() kernel.Money      { return i.unitPrice }
func (i OrderItem) Product() order.ProductDetail { return i.product }

// toOrderDetail binds the item to its order.
func (i OrderItem) toOrderDetail(orderID order.OrderID) (order.OrderDetail, error) {
	return order.NewOrderDetail(orderID.String(), i.skuID, i.quantity, i.unitPrice, i.product)
}

// CreateOrderParams carries the raw request for a new order.
type CreateOrderParams struct {
	UserID          string
	Code            string
	ReceiverName    string
	ReceiverPhone   string
	ShippingAddress order.ShippingAddress
	Items           []OrderItem
	ShippingFee     kernel.Money
	Discount        *kernel.Money // optional, same currency as ShippingFee
	Note            string
}

// CreateOrderCommand represents a request to place a new order.
// The order id is generated by the constructor so callers can refer to the
// order once the handler succeeds.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    UserID:          "u1",
//	    Code:            "ORD-1",
//	    ReceiverName:    "A",
//	    ReceiverPhone:   "0912345678",
//	    ShippingAddress: address,
//	    Items:           []OrderItem{item},
//	    ShippingFee:     fee,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed", cmd.OrderID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID order.OrderID
	params  CreateOrderParams

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Aggregate rules such as
// unique SKUs and matching currencies are checked by the handler through order.Create.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderID: order.NewOrderID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIdentity(params.UserID, params.Code),
		cmd.setReceiver(params.ReceiverName, params.ReceiverPhone),
		cmd.setShippingAddress(params.ShippingAddress),
		cmd.setItems(params.Items),
		cmd.setShippingFee(params.ShippingFee),
		cmd.setDiscount(params.Discount, params.ShippingFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.params.Note = strings.TrimSpace(params.Note)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() order.OrderID                 { return c.orderID }
func (c CreateOrderCommand) UserID() string                         { return c.params.UserID }
func (c CreateOrderCommand) Code() string                           { return c.params.Code }
func (c CreateOrderCommand) ReceiverName() string                   { return c.params.ReceiverName }
func (c CreateOrderCommand) ReceiverPhone() string                  { return c.params.ReceiverPhone }
func (c CreateOrderCommand) ShippingAddress() order.ShippingAddress { return c.params.ShippingAddress }
func (c CreateOrderCommand) ShippingFee() kernel.Money              { return c.params.ShippingFee }
func (c CreateOrderCommand) Note() string                           { return c.params.Note }

// Discount returns a copy of the requested discount, or nil when none was given.
func (c CreateOrderCommand) Discount() *kernel.Money {
	if c.params.Discount == nil {
		return nil
	}
	d := *c.params.Discount
	return &d
}

// Items returns a copy of the requested lines.
func (c CreateOrderCommand) Items() []OrderItem {
	return append([]OrderItem(nil), c.params.Items...)
}

func (c *CreateOrderCommand) setIdentity(userID, code string) error {
	u, userErr := order.NewCustomerID(userID)
	n, codeErr := order.NewOrderNumber(code)
	if err := errors.Join(userErr, codeErr); err != nil {
		return err
	}

	c.params.UserID = u.String()
	c.params.Code = n.String()
	return nil
}

func (c *CreateOrderCommand) setReceiver(name, phone string) error {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)

	var err error
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("receiverName"))
	}
	if phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("receiverPhone"))
	}
	if err != nil {
		return err
	}

	c.params.ReceiverName = name
	c.params.ReceiverPhone = phone
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address order.ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.params.ShippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if item.skuID == "" {
			return errs.NewValueIsInvalidError("items")
		}
	}

	c.params.Items = append([]OrderItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setShippingFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingFee", err)
	}

	c.params.ShippingFee = fee
	return nil
}

func (c *CreateOrderCommand) setDiscount(discount *kernel.Money, fee kernel.Money) error {
	if discount == nil {
		return nil
	}
	if err := discount.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("discount", err)
	}
	if fee.Validate() == nil && discount.Currency() != fee.Currency() {
		return errs.NewCurrencyMismatchError(fee.Currency().String(), discount.Currency().String())
	}

	d := *discount
	c.params.Discount = &d
	return nil
}
