package pricing

import (
	"fmt"

	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ModifierType classifies how a price modifier transforms the running price.
// It is a value object that validates type-specific magnitude rules and
// provides string representations for persistence and display.
type ModifierType int

const (
	// UnknownType represents an invalid or undefined modifier type.
	// This value (0) helps catch uninitialized ModifierType values.
	UnknownType ModifierType = iota

	// FixedPrice replaces the running price with the modifier value,
	// discarding any prior accumulation.
	FixedPrice

	// Percentage scales the running price by (1 + value/100).
	// A value of -100 zeroes the price; values below -100 are invalid.
	Percentage

	// FixedAmount adds the modifier value to the running price.
	// The value may be negative (a flat discount).
	FixedAmount

	// PerUnit replaces the running price with value times the unit measure.
	// It also suppresses the final unit multiplication step of the generic
	// calculation, since the unit is already folded in.
	PerUnit

	// Multiplier scales the running price by the modifier value.
	Multiplier
)

var percentageFloor = decimal.NewFromInt(-100)

// getModifierTypeStrings returns a map of ModifierType values to their string
// representations. All types are included for string conversion.
func getModifierTypeStrings() map[ModifierType]string {
	return map[ModifierType]string{
		UnknownType: "UNKNOWN",
		FixedPrice:  "FIXED_PRICE",
		Percentage:  "PERCENTAGE",
		FixedAmount: "FIXED_AMOUNT",
		PerUnit:     "PER_UNIT",
		Multiplier:  "MULTIPLIER",
	}
}

// getValidModifierTypeStrings returns a map of only valid ModifierType values.
func getValidModifierTypeStrings() map[ModifierType]string {
	//nolint:exhaustive // UnknownType is intentionally excluded as it's invalid
	return map[ModifierType]string{
		FixedPrice:  "FIXED_PRICE",
		Percentage:  "PERCENTAGE",
		FixedAmount: "FIXED_AMOUNT",
		PerUnit:     "PER_UNIT",
		Multiplier:  "MULTIPLIER",
	}
}

// ModifierTypeFromString parses a persisted string representation back into
// a ModifierType. Returns an error for unrecognized strings.
func ModifierTypeFromString(s string) (ModifierType, error) {
	for t, str := range getValidModifierTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("modifierType",
		fmt.Errorf("%q is not a valid modifier type", s))
}

// Validate checks if the ModifierType value is valid.
//
// Valid types are: FixedPrice, Percentage, FixedAmount, PerUnit, Multiplier.
// UnknownType (0) and any other values are invalid.
func (t ModifierType) Validate() error {
	if _, ok := getValidModifierTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("modifierType",
			fmt.Errorf("%d is not a valid modifier type", t))
	}
	return nil
}

// String returns the persisted name of the modifier type.
// Returns "UNKNOWN" for invalid type values.
func (t ModifierType) String() string {
	if str, ok := getModifierTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// ValidateValue checks the modifier magnitude against the type-specific rules:
//   - Percentage must be >= -100 (cannot discount more than 100%)
//   - FixedPrice, PerUnit and Multiplier must be >= 0
//   - FixedAmount is unconstrained in sign
func (t ModifierType) ValidateValue(value decimal.Decimal) error {
	switch t {
	case Percentage:
		if value.LessThan(percentageFloor) {
			return errs.NewValueIsInvalidErrorWithCause("value",
				fmt.Errorf("percentage %s is below -100", value))
		}
	case FixedPrice, PerUnit, Multiplier:
		if value.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause("value",
				fmt.Errorf("%s value %s is negative", t, value))
		}
	case FixedAmount:
		// Any sign is allowed: a negative fixed amount is a flat discount.
	case UnknownType:
		return t.Validate()
	default:
		return t.Validate()
	}
	return nil
}

// IsAdditivePhase reports whether the type belongs to the additive group of
// the product-aware calculation (applied before multiplicative modifiers).
func (t ModifierType) IsAdditivePhase() bool {
	return t == FixedAmount || t == Percentage
}

// IsMultiplicativePhase reports whether the type belongs to the multiplicative
// group of the product-aware calculation.
func (t ModifierType) IsMultiplicativePhase() bool {
	return t == Multiplier
}
