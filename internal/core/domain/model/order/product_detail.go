package order

import (
	"errors"
	"strings"
	"unicode/utf8"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	ProductNameMaxLength        = 255
	ProductDescriptionMaxLength = 1000
)

var ErrProductDetailIsNotConstructed = errs.NewValueIsRequiredError(
	"product detail must be created via NewProductDetail")

// ProductDetailParams carries the descriptive data of a purchased product.
// Only Name is required; empty optional fields mean "not provided".
type ProductDetailParams struct {
	Name        string
	Description string
	Category    string
	Brand       string
	Image       string
	Sku         string
}

// ProductDetail is a snapshot of the product at the time it was ordered,
// so later catalogue changes never rewrite historical orders.
type ProductDetail struct { //nolint:recvcheck //using for validation
	name        string
	description string
	category    string
	brand       string
	image       string
	sku         string
	guard       guard.ConstructorGuard
}

func NewProductDetail(p ProductDetailParams) (ProductDetail, error) {
	d := ProductDetail{
		category: strings.TrimSpace(p.Category),
		brand:    strings.TrimSpace(p.Brand),
		image:    strings.TrimSpace(p.Image),
		sku:      strings.TrimSpace(p.Sku),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(d.setName(p.Name), d.setDescription(p.Description)); err != nil {
		return ProductDetail{}, err
	}

	return d, nil
}

func (d ProductDetail) Validate() error {
	return d.guard.Validate(ErrProductDetailIsNotConstructed)
}

func (d ProductDetail) Name() string        { return d.name }
func (d ProductDetail) Description() string { return d.description }
func (d ProductDetail) Category() string    { return d.category }
func (d ProductDetail) Brand() string       { return d.brand }
func (d ProductDetail) Image() string       { return d.image }
func (d ProductDetail) Sku() string         { return d.sku }

// IsEqual compares every field.
func (d ProductDetail) IsEqual(other ProductDetail) bool {
	return d == other
}

func (d *ProductDetail) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if n := utf8.RuneCountInString(name); n > ProductNameMaxLength {
		return errs.NewValueIsOutOfRangeError("productName length", n, 1, ProductNameMaxLength)
	}

	d.name = name
	return nil
}

func (d *ProductDetail) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if n := utf8.RuneCountInString(description); n > ProductDescriptionMaxLength {
		return errs.NewValueIsOutOfRangeError("productDescription length", n, 0, ProductDescriptionMaxLength)
	}

	d.description = description
	return nil
}
