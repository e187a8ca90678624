package product

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// UnitType describes how a product's price scales with its physical dimensions.
type UnitType int

const (
	// UnknownUnitType represents an invalid or undefined unit type.
	UnknownUnitType UnitType = iota

	// Area prices the product per square metre (length times width).
	Area

	// Linear prices the product per running metre (length only).
	Linear

	// Unit prices the product per piece, independent of dimensions.
	Unit
)

func getUnitTypeStrings() map[UnitType]string {
	return map[UnitType]string{
		UnknownUnitType: "UNKNOWN",
		Area:            "AREA",
		Linear:          "LINEAR",
		Unit:            "UNIT",
	}
}

func getValidUnitTypeStrings() map[UnitType]string {
	//nolint:exhaustive // UnknownUnitType is intentionally excluded as it's invalid
	return map[UnitType]string{
		Area:   "AREA",
		Linear: "LINEAR",
		Unit:   "UNIT",
	}
}

// UnitTypeFromString parses a persisted string representation back into a UnitType.
func UnitTypeFromString(s string) (UnitType, error) {
	for t, str := range getValidUnitTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnknownUnitType, errs.NewValueIsInvalidErrorWithCause("unitType",
		fmt.Errorf("%q is not a valid unit type", s))
}

// Validate checks if the UnitType value is valid.
func (t UnitType) Validate() error {
	if _, ok := getValidUnitTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("unitType",
			fmt.Errorf("%d is not a valid unit type", t))
	}
	return nil
}

// String returns the persisted name of the unit type.
// Returns "UNKNOWN" for invalid values.
func (t UnitType) String() string {
	if str, ok := getUnitTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
