package queries

import (
	"errors"
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrCalculateProductPriceQueryIsNotConstructed = errors.New(
		"CalculateProductPriceQuery must be created via NewCalculateProductPriceQuery constructor",
	)
)

// CalculateProductPriceQuery computes a quote for a cataloged product,
// deriving the unit measurement from the product's dimensions and applying
// property-bound modifiers in two phases (additive, then multiplicative).
//
// Example:
//
//	// Quote three cabinet fronts in a custom size with a birch finish.
//	query, err := NewCalculateProductPriceQuery(productID, 3, 0, 800, 400,
//	    map[string]string{materialID.String(): "birch"})
//	if err != nil {
//	    return err
//	}
//
//	quote, err := handler.Handle(ctx, query)
type CalculateProductPriceQuery struct {
	productID   kernel.UUID
	quantity    float64
	coefficient float64
	lengthMM    float64
	widthMM     float64
	properties  map[string]string

	guard guard.ConstructorGuard
}

// NewCalculateProductPriceQuery creates a product price quote query.
//
// Quantity must be strictly positive; a zero coefficient means "use the
// default of 1". Zero dimensions mean "use the product's defaults"; when
// given, both length and width must be positive. Properties overlay the
// product's active defaults and are keyed by property identifier.
func NewCalculateProductPriceQuery(
	productID kernel.UUID,
	quantity float64,
	coefficient float64,
	lengthMM float64,
	widthMM float64,
	properties map[string]string,
) (CalculateProductPriceQuery, error) {
	if err := productID.Validate(); err != nil {
		return CalculateProductPriceQuery{}, err
	}
	if quantity <= 0 {
		return CalculateProductPriceQuery{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%f is not greater than 0", quantity))
	}
	if coefficient < 0 {
		return CalculateProductPriceQuery{}, errs.NewValueIsInvalidErrorWithCause("coefficient",
			fmt.Errorf("%f is negative", coefficient))
	}
	if (lengthMM == 0) != (widthMM == 0) {
		return CalculateProductPriceQuery{}, errs.NewValueIsInvalidError("dimensions")
	}
	if lengthMM < 0 || widthMM < 0 {
		return CalculateProductPriceQuery{}, errs.NewValueIsInvalidError("dimensions")
	}

	return CalculateProductPriceQuery{
		productID:   productID,
		quantity:    quantity,
		coefficient: coefficient,
		lengthMM:    lengthMM,
		widthMM:     widthMM,
		properties:  properties,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ProductID returns the identifier of the product to quote.
func (q CalculateProductPriceQuery) ProductID() kernel.UUID {
	return q.productID
}

// Quantity returns the number of units being quoted.
func (q CalculateProductPriceQuery) Quantity() float64 {
	return q.quantity
}

// Coefficient returns the adjustment coefficient, or zero for the default.
func (q CalculateProductPriceQuery) Coefficient() float64 {
	return q.coefficient
}

// LengthMM returns the dimension override length, or zero for the default.
func (q CalculateProductPriceQuery) LengthMM() float64 {
	return q.lengthMM
}

// WidthMM returns the dimension override width, or zero for the default.
func (q CalculateProductPriceQuery) WidthMM() float64 {
	return q.widthMM
}

// HasDimensionsOverride reports whether the query carries custom dimensions.
func (q CalculateProductPriceQuery) HasDimensionsOverride() bool {
	return q.lengthMM > 0 && q.widthMM > 0
}

// Properties returns the property overlay, keyed by property identifier.
func (q CalculateProductPriceQuery) Properties() map[string]string {
	return q.properties
}

// Validate ensures the query was created through the constructor.
// Returns ErrCalculateProductPriceQueryIsNotConstructed if validation fails.
func (q CalculateProductPriceQuery) Validate() error {
	return q.guard.Validate(ErrCalculateProductPriceQueryIsNotConstructed)
}

// CalculateProductPriceQueryResponse is the product quote read model.
// UnitPrice is the per-unit price after all modifiers; ModifiedUnitPrice
// scales it by the unit measurement of the effective dimensions; Subtotal
// equals ModifiedUnitPrice and FinalPrice folds in coefficient and quantity.
type CalculateProductPriceQueryResponse struct {
	ProductID         kernel.UUID
	ProductName       string
	BasePrice         float64
	ModifiedUnitPrice float64
	UnitPrice         float64
	LengthMM          float64
	WidthMM           float64
	AppliedModifiers  []AppliedModifierResponse
	Subtotal          float64
	FinalPrice        float64
}
