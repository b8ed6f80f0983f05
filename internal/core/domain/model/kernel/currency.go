package kernel

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Currency is an ISO-4217 currency code accepted by the ordering domain.
// Only the codes listed below are supported; the zero value is invalid.
type Currency string

const (
	VND Currency = "VND"
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
)

// getSupportedCurrencies returns the closed allow-list of currencies.
func getSupportedCurrencies() map[Currency]struct{} {
	return map[Currency]struct{}{
		VND: {},
		USD: {},
		EUR: {},
		JPY: {},
		GBP: {},
	}
}

// ParseCurrency normalizes raw (trimmed, upper-cased) and checks it against the allow-list.
//
// Returns:
//   - Currency: the normalized code
//   - error: ValueIsRequiredError when raw is blank, ValueIsInvalidError when the code is not supported
//
// Example:
//
//	c, err := kernel.ParseCurrency("vnd") // c == kernel.VND
func ParseCurrency(raw string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", errs.NewValueIsRequiredError("currency")
	}

	c := Currency(code)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that the currency is on the allow-list.
func (c Currency) Validate() error {
	if _, ok := getSupportedCurrencies()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a supported currency", string(c)))
	}
	return nil
}

// MinorUnits is the number of decimals the currency is displayed with.
func (c Currency) MinorUnits() int32 {
	switch c {
	case VND, JPY:
		return 0
	default:
		return 2
	}
}

// String returns the ISO code.
func (c Currency) String() string {
	return string(c)
}
