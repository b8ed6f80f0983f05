package order

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/google/uuid"
)

const (
	// IdentifierMinLength is the shortest accepted generic identifier.
	IdentifierMinLength = 1
	// IdentifierMaxLength is the longest accepted generic identifier.
	IdentifierMaxLength = 50
)

var uuidV4Pattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

var (
	ErrOrderIDIsNotConstructed       = errs.NewValueIsRequiredError("order id must be created via NewOrderID or OrderIDFromString")
	ErrOrderDetailIDIsNotConstructed = errs.NewValueIsRequiredError(
		"order detail id must be created via NewOrderDetailID or OrderDetailIDFromString")
	ErrCustomerIDIsNotConstructed  = errs.NewValueIsRequiredError("customer id must be created via NewCustomerID")
	ErrProductSkuIsNotConstructed  = errs.NewValueIsRequiredError("product sku must be created via NewProductSku")
	ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError("order number must be created via NewOrderNumber")
)

// OrderID identifies an Order. It always holds a lower-case UUID v4 string.
type OrderID struct {
	value string
	guard guard.ConstructorGuard
}

// NewOrderID generates a fresh random OrderID.
func NewOrderID() OrderID {
	return OrderID{value: uuid.New().String(), guard: guard.NewConstructorGuard()}
}

// OrderIDFromString parses an existing OrderID; s must have the UUID v4 shape.
func OrderIDFromString(s string) (OrderID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	if !uuidV4Pattern.MatchString(s) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%q is not a UUID v4", s))
	}
	return OrderID{value: strings.ToLower(s), guard: guard.NewConstructorGuard()}, nil
}

func (id OrderID) Validate() error { return id.guard.Validate(ErrOrderIDIsNotConstructed) }

func (id OrderID) String() string { return id.value }

func (id OrderID) IsEqual(other OrderID) bool { return id.value == other.value }

// OrderDetailID identifies a line item inside its Order.
type OrderDetailID struct {
	value string
	guard guard.ConstructorGuard
}

// NewOrderDetailID generates a fresh random OrderDetailID.
func NewOrderDetailID() OrderDetailID {
	return OrderDetailID{value: uuid.New().String(), guard: guard.NewConstructorGuard()}
}

func OrderDetailIDFromString(s string) (OrderDetailID, error) {
	v, err := boundedIdentifier("orderDetailId", s)
	if err != nil {
		return OrderDetailID{}, err
	}
	return OrderDetailID{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (id OrderDetailID) Validate() error { return id.guard.Validate(ErrOrderDetailIDIsNotConstructed) }

func (id OrderDetailID) String() string { return id.value }

func (id OrderDetailID) IsEqual(other OrderDetailID) bool { return id.value == other.value }

// CustomerID identifies the user who placed the order.
type CustomerID struct {
	value string
	guard guard.ConstructorGuard
}

func NewCustomerID(s string) (CustomerID, error) {
	v, err := boundedIdentifier("userId", s)
	if err != nil {
		return CustomerID{}, err
	}
	return CustomerID{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (id CustomerID) Validate() error { return id.guard.Validate(ErrCustomerIDIsNotConstructed) }

func (id CustomerID) String() string { return id.value }

func (id CustomerID) IsEqual(other CustomerID) bool { return id.value == other.value }

// ProductSku is the business key of a line item; it is unique within an Order.
type ProductSku struct {
	value string
	guard guard.ConstructorGuard
}

func NewProductSku(s string) (ProductSku, error) {
	v, err := boundedIdentifier("skuId", s)
	if err != nil {
		return ProductSku{}, err
	}
	return ProductSku{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (s ProductSku) Validate() error { return s.guard.Validate(ErrProductSkuIsNotConstructed) }

func (s ProductSku) String() string { return s.value }

func (s ProductSku) IsEqual(other ProductSku) bool { return s.value == other.value }

// OrderNumber is the human-facing order code, e.g. "ORD-1".
type OrderNumber struct {
	value string
	guard guard.ConstructorGuard
}

func NewOrderNumber(s string) (OrderNumber, error) {
	v, err := boundedIdentifier("code", s)
	if err != nil {
		return OrderNumber{}, err
	}
	return OrderNumber{value: v, guard: guard.NewConstructorGuard()}, nil
}

func (n OrderNumber) Validate() error { return n.guard.Validate(ErrOrderNumberIsNotConstructed) }

func (n OrderNumber) String() string { return n.value }

func (n OrderNumber) IsEqual(other OrderNumber) bool { return n.value == other.value }

func boundedIdentifier(paramName, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	if n := utf8.RuneCountInString(v); n > IdentifierMaxLength {
		return "", errs.NewValueIsOutOfRangeError(paramName+" length", n, IdentifierMinLength, IdentifierMaxLength)
	}
	return v, nil
}
