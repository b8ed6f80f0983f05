package order

import "time"

// Summary is the flat projection of an Order shared with other layers.
// Monetary fields use Money.String ("110000 VND"), not the locale format.
type Summary struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	Code          string    `json:"code"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalAmount   string    `json:"totalAmount"`
	Subtotal      string    `json:"subtotal"`
	ShippingFee   string    `json:"shippingFee"`
	ItemCount     int       `json:"itemCount"`
	ReceiverName  string    `json:"receiverName"`
	ReceiverPhone string    `json:"receiverPhone"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Summary builds the projection of o. ItemCount counts line items, not units.
func (o *Order) Summary() (Summary, error) {
	if err := o.Validate(); err != nil {
		return Summary{}, err
	}

	subtotal, err := o.CalculateSubtotal()
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		OrderID:       o.id.String(),
		UserID:        o.userID.String(),
		Code:          o.code.String(),
		Status:        o.status.String(),
		PaymentStatus: o.paymentStatus.String(),
		TotalAmount:   o.totalAmount.String(),
		Subtotal:      subtotal.String(),
		ShippingFee:   o.shippingFee.String(),
		ItemCount:     len(o.orderDetails),
		ReceiverName:  o.receiverName,
		ReceiverPhone: o.receiverPhone,
		CreatedAt:     o.createdAt,
	}, nil
}
