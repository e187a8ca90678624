package kernel

import (
	"fmt"
	"math"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyTolerance is the maximum absolute difference at which two monetary
// amounts are still considered equal. Derived totals (item total versus
// final price times quantity) are checked against this tolerance.
var MoneyTolerance = decimal.NewFromFloat(0.01)

// ErrMoneyIsNotConstructed is returned when attempting to validate a Money value
// that was not created via one of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromFloat, or ZeroMoney constructors")

// Money represents a monetary amount with exact decimal arithmetic.
// Money is an immutable value object: every arithmetic method returns a new
// instance. Amounts may be negative (a FIXED_AMOUNT modifier can subtract),
// but constructors reject non-finite input.
//
// Example:
//
//	price, err := kernel.NewMoneyFromFloat(1000)
//	if err != nil {
//	    // Handle validation error
//	}
//	total := price.MulFloat(1.1) // 1100
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}
}

// NewMoneyFromFloat creates a Money value from a float64 amount.
// Returns an error if the amount is NaN or infinite.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not a finite number", amount))
	}
	return NewMoney(decimal.NewFromFloat(amount)), nil
}

// ZeroMoney returns a Money value of zero.
func ZeroMoney() Money {
	return NewMoney(decimal.Zero)
}

// Validate checks that the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64, discarding precision beyond
// float64 representation. Intended for read models and API responses.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Add returns the sum of this amount and the other.
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Sub returns this amount minus the other.
func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul returns this amount scaled by a decimal factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(factor))
}

// MulFloat returns this amount scaled by a float64 factor.
func (m Money) MulFloat(factor float64) Money {
	return m.Mul(decimal.NewFromFloat(factor))
}

// Round returns the amount rounded half away from zero to the given number
// of decimal places.
func (m Money) Round(places int32) Money {
	return NewMoney(m.amount.Round(places))
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// LessThan reports whether this amount is strictly less than the other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsEqual reports exact equality of the two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// ApproxEqual reports whether the two amounts differ by less than MoneyTolerance.
func (m Money) ApproxEqual(other Money) bool {
	return m.amount.Sub(other.amount).Abs().LessThan(MoneyTolerance)
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}
