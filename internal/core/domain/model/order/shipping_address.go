package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// vietnamesePhonePattern matches Vietnamese mobile numbers in local (0xx) or
// international (+84xx) form, e.g. 0912345678 or +84912345678.
var vietnamesePhonePattern = regexp.MustCompile(`^(0|\+84)[35789][0-9]{8}$`)

var ErrShippingAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"shipping address must be created via NewShippingAddress")

// ShippingAddress is the delivery destination of an order.
// All fields are required; the receiver phone must be a Vietnamese mobile number.
// ShippingAddress is an immutable value object compared structurally.
type ShippingAddress struct { //nolint:recvcheck //using for validation
	receiverName  string
	receiverPhone string
	street        string
	city          string
	district      string
	ward          string
	guard         guard.ConstructorGuard
}

// NewShippingAddress validates every field and joins all failures into one error.
func NewShippingAddress(receiverName, receiverPhone, street, city, district, ward string) (ShippingAddress, error) {
	a := ShippingAddress{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setRequired(&a.receiverName, "receiverName", receiverName),
		a.setReceiverPhone(receiverPhone),
		setRequired(&a.street, "street", street),
		setRequired(&a.city, "city", city),
		setRequired(&a.district, "district", district),
		setRequired(&a.ward, "ward", ward),
	); err != nil {
		return ShippingAddress{}, err
	}

	return a, nil
}

func (a ShippingAddress) Validate() error {
	return a.guard.Validate(ErrShippingAddressIsNotConstructed)
}

func (a ShippingAddress) ReceiverName() string  { return a.receiverName }
func (a ShippingAddress) ReceiverPhone() string { return a.receiverPhone }
func (a ShippingAddress) Street() string        { return a.street }
func (a ShippingAddress) City() string          { return a.city }
func (a ShippingAddress) District() string      { return a.district }
func (a ShippingAddress) Ward() string          { return a.ward }

// IsEqual compares every field.
func (a ShippingAddress) IsEqual(other ShippingAddress) bool {
	return a == other
}

// String joins the address lines from the most to the least specific.
func (a ShippingAddress) String() string {
	return strings.Join([]string{a.street, a.ward, a.district, a.city}, ", ")
}

func (a *ShippingAddress) setReceiverPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("receiverPhone")
	}
	if !vietnamesePhonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause(
			"receiverPhone", fmt.Errorf("%q is not a Vietnamese mobile number", phone))
	}

	a.receiverPhone = phone
	return nil
}

// setRequired trims value and stores it in dst unless it is blank.
func setRequired(dst *string, paramName, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	*dst = value
	return nil
}
