package product

import (
	"errors"
	"fmt"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// millimetresPerMetre converts stored dimensions to the pricing length unit.
var millimetresPerMetre = decimal.NewFromInt(1000)

// ErrDimensionsAreNotConstructed is returned when attempting to use improperly
// initialized Dimensions. Dimensions must be created via NewDimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions is an immutable value object holding a product's physical size
// in millimetres. Both sides must be strictly positive.
//
// Example:
//
//	dims, err := product.NewDimensions(2000, 600)
//	if err != nil {
//	    // Handle validation error
//	}
//	area := dims.UnitMeasurement(product.Area) // 1.2 square metres
type Dimensions struct { //nolint:recvcheck //using for validation
	lengthMM float64
	widthMM  float64
	guard    guard.ConstructorGuard
}

// NewDimensions creates Dimensions from length and width in millimetres.
// Returns an error if either side is not strictly positive.
func NewDimensions(lengthMM, widthMM float64) (Dimensions, error) {
	d := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(d.setLength(lengthMM), d.setWidth(widthMM)); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

// Validate ensures the Dimensions were created via NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// Length returns the length in millimetres.
func (d Dimensions) Length() float64 {
	return d.lengthMM
}

// Width returns the width in millimetres.
func (d Dimensions) Width() float64 {
	return d.widthMM
}

// IsEqual compares two dimension values side by side.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.lengthMM == other.lengthMM && d.widthMM == other.widthMM
}

// UnitMeasurement computes the pricing scalar for the given unit type:
//   - Area: length times width, scaled to square metres
//   - Linear: length, scaled to metres
//   - Unit: always 1
func (d Dimensions) UnitMeasurement(unitType UnitType) decimal.Decimal {
	lengthM := decimal.NewFromFloat(d.lengthMM).Div(millimetresPerMetre)
	widthM := decimal.NewFromFloat(d.widthMM).Div(millimetresPerMetre)

	switch unitType {
	case Area:
		return lengthM.Mul(widthM)
	case Linear:
		return lengthM
	case Unit, UnknownUnitType:
		return decimal.NewFromInt(1)
	default:
		return decimal.NewFromInt(1)
	}
}

// String returns a human-readable representation, e.g. "2000x600mm".
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gmm", d.lengthMM, d.widthMM)
}

func (d *Dimensions) setLength(lengthMM float64) error {
	if lengthMM <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("length",
			fmt.Errorf("%g is not greater than 0", lengthMM))
	}
	d.lengthMM = lengthMM
	return nil
}

func (d *Dimensions) setWidth(widthMM float64) error {
	if widthMM <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("width",
			fmt.Errorf("%g is not greater than 0", widthMM))
	}
	d.widthMM = widthMM
	return nil
}
