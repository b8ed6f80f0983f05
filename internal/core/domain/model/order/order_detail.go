package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	MinQuantity = 1
	MaxQuantity = 1000
)

var ErrOrderDetailIsNotConstructed = errors.New("OrderDetail must be created via NewOrderDetail or RestoreOrderDetail")

// now is the clock used for createdAt/updatedAt stamps.
var now = func() time.Time { return time.Now().UTC() }

// OrderDetail is a single line item of an Order.
//
// OrderDetail follows these invariants:
//   - orderID and skuID are non-empty
//   - quantity is an integer in [MinQuantity..MaxQuantity]
//   - unitPrice is strictly positive
//
// It is an entity compared by id; two lines with the same SKU but different ids
// are different lines. Updates return a new OrderDetail with the same identity.
type OrderDetail struct { //nolint:recvcheck //using for validation
	id            OrderDetailID
	orderID       string
	skuID         ProductSku
	quantity      int
	unitPrice     kernel.Money
	productDetail ProductDetail
	createdAt     time.Time
	updatedAt     time.Time
	guard         guard.ConstructorGuard
}

// NewOrderDetail creates a line item with a freshly generated id.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromInt(50000, "VND")
//	product, _ := order.NewProductDetail(order.ProductDetailParams{Name: "T-shirt"})
//	line, err := order.NewOrderDetail(orderID.String(), "S1", 2, price, product)
func NewOrderDetail(
	orderID, skuID string,
	quantity int,
	unitPrice kernel.Money,
	productDetail ProductDetail,
) (OrderDetail, error) {
	ts := now()
	return newOrderDetail(NewOrderDetailID(), orderID, skuID, quantity, unitPrice, productDetail, ts, ts)
}

// RestoreOrderDetail rebuilds a line item from storage with its original id and timestamps.
func RestoreOrderDetail(
	id OrderDetailID,
	orderID, skuID string,
	quantity int,
	unitPrice kernel.Money,
	productDetail ProductDetail,
	createdAt, updatedAt time.Time,
) (OrderDetail, error) {
	return newOrderDetail(id, orderID, skuID, quantity, unitPrice, productDetail, createdAt, updatedAt)
}

func newOrderDetail(
	id OrderDetailID,
	orderID, skuID string,
	quantity int,
	unitPrice kernel.Money,
	productDetail ProductDetail,
	createdAt, updatedAt time.Time,
) (OrderDetail, error) {
	d := OrderDetail{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setSkuID(skuID),
		d.setQuantity(quantity),
		d.setUnitPrice(unitPrice),
		d.setProductDetail(productDetail),
	); err != nil {
		return OrderDetail{}, err
	}

	return d, nil
}

func (d OrderDetail) Validate() error {
	return d.guard.Validate(ErrOrderDetailIsNotConstructed)
}

func (d OrderDetail) ID() OrderDetailID            { return d.id }
func (d OrderDetail) OrderID() string              { return d.orderID }
func (d OrderDetail) SkuID() ProductSku            { return d.skuID }
func (d OrderDetail) Quantity() int                { return d.quantity }
func (d OrderDetail) UnitPrice() kernel.Money      { return d.unitPrice }
func (d OrderDetail) ProductDetail() ProductDetail { return d.productDetail }
func (d OrderDetail) CreatedAt() time.Time         { return d.createdAt }
func (d OrderDetail) UpdatedAt() time.Time         { return d.updatedAt }

// TotalPrice is unitPrice × quantity, recomputed on every call.
func (d OrderDetail) TotalPrice() (kernel.Money, error) {
	if err := d.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return d.unitPrice.Multiply(float64(d.quantity))
}

// UpdateQuantity returns a copy with the new quantity and a refreshed updatedAt.
func (d OrderDetail) UpdateQuantity(quantity int) (OrderDetail, error) {
	if err := d.Validate(); err != nil {
		return OrderDetail{}, err
	}

	updated := d
	if err := updated.setQuantity(quantity); err != nil {
		return OrderDetail{}, err
	}
	updated.updatedAt = now()
	return updated, nil
}

// UpdateUnitPrice returns a copy with the new unit price and a refreshed updatedAt.
func (d OrderDetail) UpdateUnitPrice(price kernel.Money) (OrderDetail, error) {
	if err := d.Validate(); err != nil {
		return OrderDetail{}, err
	}

	updated := d
	if err := updated.setUnitPrice(price); err != nil {
		return OrderDetail{}, err
	}
	updated.updatedAt = now()
	return updated, nil
}

// MatchesSku compares the business key, ignoring identity.
func (d OrderDetail) MatchesSku(skuID string) bool {
	return d.skuID.String() == strings.TrimSpace(skuID)
}

// IsEqual compares identity only.
func (d OrderDetail) IsEqual(other OrderDetail) bool {
	return d.id.IsEqual(other.id)
}

func (d *OrderDetail) setID(id OrderDetailID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *OrderDetail) setOrderID(orderID string) error {
	return setRequired(&d.orderID, "orderId", orderID)
}

func (d *OrderDetail) setSkuID(skuID string) error {
	sku, err := NewProductSku(skuID)
	if err != nil {
		return err
	}
	d.skuID = sku
	return nil
}

func (d *OrderDetail) setQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	d.quantity = quantity
	return nil
}

func (d *OrderDetail) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is not greater than 0", price))
	}
	d.unitPrice = price
	return nil
}

func (d *OrderDetail) setProductDetail(productDetail ProductDetail) error {
	if err := productDetail.Validate(); err != nil {
		return err
	}
	d.productDetail = productDetail
	return nil
}
