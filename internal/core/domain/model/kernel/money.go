package kernel

import (
	"errors"
	"fmt"
	"math"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
// Money must be created through NewMoney, NewMoneyFromInt, NewMoneyFromFloat or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromInt, NewMoneyFromFloat or ZeroMoney")

// Money is an immutable, currency-safe, non-negative decimal amount.
//
// Every arithmetic operation returns a new Money and never modifies the receiver.
// Operations combining two values require both to carry the same currency and fail
// with a CurrencyMismatchError otherwise.
//
// Money holds a decimal.Decimal, so compare values with IsEqual rather than ==.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromInt(50000, "VND")
//	fee, _ := kernel.NewMoneyFromInt(10000, "VND")
//	total, _ := price.Add(fee)
//	fmt.Println(total) // 60000 VND
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

// NewMoney creates Money from a decimal amount and a currency code.
//
// Parameters:
//   - amount: must not be negative
//   - currency: one of VND, USD, EUR, JPY, GBP (case-insensitive)
//
// Returns:
//   - Money: the created value
//   - error: joined validation errors for the amount and the currency
//
// Example:
//
//	m, err := kernel.NewMoney(decimal.RequireFromString("19.99"), "usd")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.Currency()) // USD
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// NewMoneyFromInt creates Money from a whole amount, e.g. VND prices.
func NewMoneyFromInt(amount int64, currency string) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount), currency)
}

// NewMoneyFromFloat creates Money from a float amount.
// NaN and infinite amounts are rejected with a ValueIsInvalidError.
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is not a finite number", amount))
	}
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency Currency) (Money, error) {
	return NewMoney(decimal.Zero, string(currency))
}

// Validate checks that the Money was created through one of its constructors.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns m + other.
//
// Returns:
//   - Money: the sum in the shared currency
//   - error: CurrencyMismatchError if the currencies differ, or a construction error
//     if either operand is a zero value
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return m.withAmount(m.amount.Add(other.amount))
}

// Subtract returns m - other.
//
// Returns:
//   - Money: the difference in the shared currency
//   - error: CurrencyMismatchError if the currencies differ,
//     ValueIsInvalidError if the result would be negative
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}

	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("subtracting %s from %s gives a negative amount", other, m),
		)
	}
	return m.withAmount(result)
}

// Multiply returns m scaled by factor.
// factor must be a finite, non-negative number.
//
// Example:
//
//	unit, _ := kernel.NewMoneyFromInt(50000, "VND")
//	total, _ := unit.Multiply(2) // 100000 VND
func (m Money) Multiply(factor float64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor", fmt.Errorf("%v is not a finite number", factor))
	}
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor", fmt.Errorf("%v is negative", factor))
	}
	return m.withAmount(m.amount.Mul(decimal.NewFromFloat(factor)))
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is below zero.
// Constructed Money is never negative; the predicate exists for symmetry.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsGreaterThan compares two amounts of the same currency.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// IsLessThan compares two amounts of the same currency.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// IsEqual reports structural equality: same currency and numerically equal amounts.
// Unlike the comparisons it never fails; different currencies are simply not equal.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the plain "amount CURRENCY" form used in summaries and logs,
// e.g. "110000 VND" or "19.99 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

// Format renders the amount for display.
//
// VND is shown without decimals, grouped with the Vietnamese thousands separator and
// followed by the dong sign ("110.000 ₫"). Every other currency is shown as
// "<CODE> <amount>" with its minor units ("USD 19.99", "JPY 100").
//
// Format is presentation only; never parse it back or use it for equality.
func (m Money) Format() string {
	if m.currency == VND {
		p := message.NewPrinter(language.Vietnamese)
		return p.Sprintf("%d ₫", m.amount.Round(0).IntPart())
	}
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(m.currency.MinorUnits()))
}

func (m Money) sameCurrency(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return errs.NewCurrencyMismatchError(m.currency.String(), other.currency.String())
	}
	return nil
}

func (m Money) withAmount(amount decimal.Decimal) (Money, error) {
	return NewMoney(amount, m.currency.String())
}

// setAmount sets the amount with validation.
// Note: pointer receivers are used only by these private setters during construction.
func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}

	m.amount = amount
	return nil
}

func (m *Money) setCurrency(raw string) error {
	c, err := ParseCurrency(raw)
	if err != nil {
		return err
	}

	m.currency = c
	return nil
}
