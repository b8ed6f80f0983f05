package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// Create, FromExisting or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via Create, FromExisting or RestoreOrder")
)

// CreateParams describes a new order placement.
// ID is optional; a fresh OrderID is generated when it is left as the zero value.
type CreateParams struct {
	ID              OrderID
	UserID          string
	Code            string
	ShippingAddress ShippingAddress
	ReceiverName    string
	ReceiverPhone   string
	OrderDetails    []OrderDetail
	ShippingFee     kernel.Money
	Discount        *kernel.Money
	Note            string
}

// RestoreParams carries every persisted field of an order.
type RestoreParams struct {
	ID              OrderID
	UserID          string
	Code            string
	Status          Status
	PaymentStatus   PaymentStatus
	ShippingAddress ShippingAddress
	ReceiverName    string
	ReceiverPhone   string
	OrderDetails    []OrderDetail
	ShippingFee     kernel.Money
	Discount        *kernel.Money
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

// Order is the aggregate root of the ordering domain. It owns its OrderDetail
// collection; every change to a line item flows through Order.
//
// Order follows these invariants:
//   - at least one OrderDetail, SKUs unique within the order
//   - totalAmount == sum(OrderDetail.TotalPrice) + shippingFee, in one currency
//   - status and paymentStatus change only through the lifecycle methods
//
// Order is immutable: every lifecycle method returns a new *Order and leaves the
// receiver untouched. A failed call returns nil and an error; nothing is partially applied.
type Order struct {
	id              OrderID
	userID          CustomerID
	code            OrderNumber
	status          Status
	paymentStatus   PaymentStatus
	totalAmount     kernel.Money
	shippingFee     kernel.Money
	receiverName    string
	receiverPhone   string
	shippingAddress ShippingAddress
	orderDetails    []OrderDetail
	discount        *kernel.Money
	note            string
	createdAt       time.Time
	updatedAt       time.Time

	// version is the persisted row version used for optimistic locking.
	version int

	isConstructed bool
}

// Create places a new order in PENDING status with PENDING payment.
//
// Example:
//
//	id := order.NewOrderID()
//	line, _ := order.NewOrderDetail(id.String(), "S1", 2, price, product)
//	o, err := order.Create(order.CreateParams{
//	    ID:              id,
//	    UserID:          "u1",
//	    Code:            "ORD-1",
//	    ShippingAddress: address,
//	    ReceiverName:    "A",
//	    ReceiverPhone:   "0912345678",
//	    OrderDetails:    []order.OrderDetail{line},
//	    ShippingFee:     fee,
//	})
func Create(p CreateParams) (*Order, error) {
	id := p.ID
	if id.Validate() != nil {
		id = NewOrderID()
	}

	ts := now()
	return build(RestoreParams{
		ID:              id,
		UserID:          p.UserID,
		Code:            p.Code,
		Status:          StatusPending,
		PaymentStatus:   PaymentStatusPending,
		ShippingAddress: p.ShippingAddress,
		ReceiverName:    p.ReceiverName,
		ReceiverPhone:   p.ReceiverPhone,
		OrderDetails:    p.OrderDetails,
		ShippingFee:     p.ShippingFee,
		Discount:        p.Discount,
		Note:            p.Note,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	})
}

// FromExisting rehydrates an order but resets Status and PaymentStatus to PENDING,
// ignoring the values in p. Use RestoreOrder to keep the persisted lifecycle state.
func FromExisting(p RestoreParams) (*Order, error) {
	p.Status = StatusPending
	p.PaymentStatus = PaymentStatusPending
	return build(p)
}

// RestoreOrder rehydrates an order with every persisted field, including its
// lifecycle state and row version. totalAmount is always recomputed.
func RestoreOrder(p RestoreParams) (*Order, error) {
	return build(p)
}

func build(p RestoreParams) (*Order, error) {
	o := &Order{
		id:            p.ID,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		note:          strings.TrimSpace(p.Note),
		version:       p.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setUserID(p.UserID),
		o.setCode(p.Code),
		o.setStatus(p.Status),
		o.setPaymentStatus(p.PaymentStatus),
		o.setShippingAddress(p.ShippingAddress),
		setRequired(&o.receiverName, "receiverName", p.ReceiverName),
		setRequired(&o.receiverPhone, "receiverPhone", p.ReceiverPhone),
		o.setShippingFee(p.ShippingFee),
		o.setDiscount(p.Discount),
		o.setOrderDetails(p.OrderDetails),
	); err != nil {
		return nil, err
	}

	if err := o.recalculateTotal(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() OrderID                      { return o.id }
func (o *Order) UserID() CustomerID               { return o.userID }
func (o *Order) Code() OrderNumber                { return o.code }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) PaymentStatus() PaymentStatus     { return o.paymentStatus }
func (o *Order) TotalAmount() kernel.Money        { return o.totalAmount }
func (o *Order) ShippingFee() kernel.Money        { return o.shippingFee }
func (o *Order) ReceiverName() string             { return o.receiverName }
func (o *Order) ReceiverPhone() string            { return o.receiverPhone }
func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }
func (o *Order) Note() string                     { return o.note }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
func (o *Order) Version() int                     { return o.version }

// OrderDetails returns a copy of the line items.
func (o *Order) OrderDetails() []OrderDetail {
	return slices.Clone(o.orderDetails)
}

// Discount returns the recorded discount, or nil when none was given.
// It is informational and does not take part in totalAmount.
func (o *Order) Discount() *kernel.Money {
	if o.discount == nil {
		return nil
	}
	d := *o.discount
	return &d
}

// FindOrderDetail finds a line item by id.
func (o *Order) FindOrderDetail(id OrderDetailID) (OrderDetail, bool) {
	i := o.indexOfDetail(id)
	if i < 0 {
		return OrderDetail{}, false
	}
	return o.orderDetails[i], true
}

// CalculateSubtotal sums the line totals, excluding the shipping fee.
func (o *Order) CalculateSubtotal() (kernel.Money, error) {
	subtotal, err := kernel.ZeroMoney(o.shippingFee.Currency())
	if err != nil {
		return kernel.Money{}, err
	}

	for _, d := range o.orderDetails {
		lineTotal, err := d.TotalPrice()
		if err != nil {
			return kernel.Money{}, err
		}
		if subtotal, err = subtotal.Add(lineTotal); err != nil {
			return kernel.Money{}, err
		}
	}

	return subtotal, nil
}

// CanBeModified reports whether line items may still change.
func (o *Order) CanBeModified() bool {
	return o.status == StatusPending
}

// IsInFinalState reports DELIVERED or CANCELLED. RETURNED is not included.
func (o *Order) IsInFinalState() bool {
	return o.status == StatusDelivered || o.status == StatusCancelled
}

// AddOrderDetail appends a line item to a pending order.
func (o *Order) AddOrderDetail(detail OrderDetail) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanBeModified() {
		return nil, errs.NewInvalidStateError("order details can only be added to pending orders")
	}
	if err := detail.Validate(); err != nil {
		return nil, err
	}
	if o.hasSku(detail.SkuID().String()) {
		return nil, errs.NewValueIsDuplicateError("skuId", detail.SkuID().String())
	}

	return o.mutate(func(next *Order) error {
		next.orderDetails = append(next.orderDetails, detail)
		return nil
	})
}

// RemoveOrderDetail drops a line item from a pending order. The last line item
// cannot be removed.
func (o *Order) RemoveOrderDetail(id OrderDetailID) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanBeModified() {
		return nil, errs.NewInvalidStateError("order details can only be removed from pending orders")
	}

	i := o.indexOfDetail(id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("orderDetailId", id)
	}
	if len(o.orderDetails) == 1 {
		return nil, errs.NewInvalidStateError("cannot remove the last order detail")
	}

	return o.mutate(func(next *Order) error {
		next.orderDetails = slices.Delete(next.orderDetails, i, i+1)
		return nil
	})
}

// UpdateOrderDetailQuantity changes the quantity of a line item on a pending order.
func (o *Order) UpdateOrderDetailQuantity(id OrderDetailID, quantity int) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanBeModified() {
		return nil, errs.NewInvalidStateError("order details can only be updated on pending orders")
	}

	i := o.indexOfDetail(id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("orderDetailId", id)
	}

	updated, err := o.orderDetails[i].UpdateQuantity(quantity)
	if err != nil {
		return nil, err
	}

	return o.mutate(func(next *Order) error {
		next.orderDetails[i] = updated
		return nil
	})
}

// Confirm moves a PENDING order to CONFIRMED.
func (o *Order) Confirm() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status != StatusPending {
		return nil, errs.NewInvalidStateError("only pending orders can be confirmed")
	}
	return o.withStatus(StatusConfirmed)
}

// Ship moves a CONFIRMED and PAID order to SHIPPED.
func (o *Order) Ship() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status != StatusConfirmed {
		return nil, errs.NewInvalidStateError("only confirmed orders can be shipped")
	}
	if o.paymentStatus != PaymentStatusPaid {
		return nil, errs.NewInvalidStateError("cannot ship unpaid orders")
	}
	return o.withStatus(StatusShipped)
}

// Deliver moves a SHIPPED order to DELIVERED.
func (o *Order) Deliver() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status != StatusShipped {
		return nil, errs.NewInvalidStateError("only shipped orders can be delivered")
	}
	return o.withStatus(StatusDelivered)
}

// Cancel moves the order to CANCELLED from any status except DELIVERED and CANCELLED.
// It does not consult Status.CanTransitionTo.
func (o *Order) Cancel() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	switch o.status {
	case StatusDelivered:
		return nil, errs.NewInvalidStateError("cannot cancel delivered orders")
	case StatusCancelled:
		return nil, errs.NewInvalidStateError("order is already cancelled")
	default:
		return o.withStatus(StatusCancelled)
	}
}

// MarkAsPaid records a successful payment. It is not idempotent.
func (o *Order) MarkAsPaid() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.paymentStatus == PaymentStatusPaid {
		return nil, errs.NewInvalidStateError("order is already paid")
	}
	if o.status == StatusCancelled {
		return nil, errs.NewInvalidStateError("cannot pay for cancelled orders")
	}
	return o.withPaymentStatus(PaymentStatusPaid)
}

// MarkPaymentAsFailed records a failed payment attempt.
func (o *Order) MarkPaymentAsFailed() (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.paymentStatus == PaymentStatusFailed {
		return nil, errs.NewInvalidStateError("payment is already marked as failed")
	}
	return o.withPaymentStatus(PaymentStatusFailed)
}

// UpdateShippingAddress replaces the delivery address of a PENDING or CONFIRMED order.
func (o *Order) UpdateShippingAddress(address ShippingAddress) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status != StatusPending && o.status != StatusConfirmed {
		return nil, errs.NewInvalidStateError("shipping address can only be changed for pending or confirmed orders")
	}

	return o.mutate(func(next *Order) error {
		return next.setShippingAddress(address)
	})
}

// UpdateShippingFee replaces the shipping fee of a PENDING order and recomputes the total.
func (o *Order) UpdateShippingFee(fee kernel.Money) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.CanBeModified() {
		return nil, errs.NewInvalidStateError("shipping fee can only be changed for pending orders")
	}

	return o.mutate(func(next *Order) error {
		return next.setShippingFee(fee)
	})
}

// mutate applies change to a deep copy, recomputes the total and refreshes updatedAt.
// The receiver is never modified.
func (o *Order) mutate(change func(next *Order) error) (*Order, error) {
	next := o.clone()
	if err := change(next); err != nil {
		return nil, err
	}
	if err := next.recalculateTotal(); err != nil {
		return nil, err
	}
	next.updatedAt = now()
	return next, nil
}

func (o *Order) withStatus(status Status) (*Order, error) {
	return o.mutate(func(next *Order) error {
		next.status = status
		return nil
	})
}

func (o *Order) withPaymentStatus(status PaymentStatus) (*Order, error) {
	return o.mutate(func(next *Order) error {
		next.paymentStatus = status
		return nil
	})
}

func (o *Order) clone() *Order {
	next := *o
	next.orderDetails = slices.Clone(o.orderDetails)
	next.discount = o.Discount()
	return &next
}

func (o *Order) recalculateTotal() error {
	subtotal, err := o.CalculateSubtotal()
	if err != nil {
		return err
	}

	total, err := subtotal.Add(o.shippingFee)
	if err != nil {
		return err
	}

	o.totalAmount = total
	return nil
}

func (o *Order) indexOfDetail(id OrderDetailID) int {
	return slices.IndexFunc(o.orderDetails, func(d OrderDetail) bool {
		return d.ID().IsEqual(id)
	})
}

func (o *Order) hasSku(skuID string) bool {
	return slices.ContainsFunc(o.orderDetails, func(d OrderDetail) bool {
		return d.MatchesSku(skuID)
	})
}

func (o *Order) setID(id OrderID) error {
	return id.Validate()
}

func (o *Order) setUserID(userID string) error {
	id, err := NewCustomerID(userID)
	if err != nil {
		return err
	}
	o.userID = id
	return nil
}

func (o *Order) setCode(code string) error {
	number, err := NewOrderNumber(code)
	if err != nil {
		return err
	}
	o.code = number
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setShippingAddress(address ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setShippingFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingFee", err)
	}
	o.shippingFee = fee
	return nil
}

func (o *Order) setDiscount(discount *kernel.Money) error {
	if discount == nil {
		return nil
	}
	if err := discount.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("discount", err)
	}
	d := *discount
	o.discount = &d
	return nil
}

func (o *Order) setOrderDetails(details []OrderDetail) error {
	if len(details) == 0 {
		return errs.NewValueIsRequiredError("orderDetails")
	}

	seen := make(map[string]struct{}, len(details))
	for _, d := range details {
		if err := d.Validate(); err != nil {
			return err
		}
		sku := d.SkuID().String()
		if _, ok := seen[sku]; ok {
			return errs.NewValueIsDuplicateError("skuId", sku)
		}
		seen[sku] = struct{}{}
	}

	o.orderDetails = slices.Clone(details)
	return nil
}
