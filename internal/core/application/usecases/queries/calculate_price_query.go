package queries

import (
	"errors"
	"fmt"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrCalculatePriceQueryIsNotConstructed = errors.New(
		"CalculatePriceQuery must be created via NewCalculatePriceQuery constructor",
	)
)

// CalculatePriceQuery computes a price quote for arbitrary input without
// touching any order. The active modifier catalog is applied to the given
// base price, so the same request repeated later may yield a different
// quote as modifiers change.
//
// Example:
//
//	query, err := NewCalculatePriceQuery(1000, 2, 1.5, 1, map[string]string{
//	    "finish": "matte",
//	})
//	if err != nil {
//	    return err
//	}
//
//	quote, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to calculate price: %w", err)
//	}
//
//	fmt.Printf("Final %.2f, total %.2f\n", quote.FinalPrice, quote.TotalPrice)
type CalculatePriceQuery struct {
	basePrice   float64
	quantity    float64
	unit        float64
	coefficient float64
	properties  map[string]string

	guard guard.ConstructorGuard
}

// NewCalculatePriceQuery creates a price quote query.
//
// The base price must be non-negative; quantity, unit and coefficient must
// be strictly positive. Properties feed modifier applicability checks and
// may be nil.
func NewCalculatePriceQuery(
	basePrice float64,
	quantity float64,
	unit float64,
	coefficient float64,
	properties map[string]string,
) (CalculatePriceQuery, error) {
	if basePrice < 0 {
		return CalculatePriceQuery{}, errs.NewValueIsInvalidErrorWithCause("basePrice",
			fmt.Errorf("%f is negative", basePrice))
	}
	if quantity <= 0 {
		return CalculatePriceQuery{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%f is not greater than 0", quantity))
	}
	if unit <= 0 {
		return CalculatePriceQuery{}, errs.NewValueIsInvalidErrorWithCause("unit",
			fmt.Errorf("%f is not greater than 0", unit))
	}
	if coefficient <= 0 {
		return CalculatePriceQuery{}, errs.NewValueIsInvalidErrorWithCause("coefficient",
			fmt.Errorf("%f is not greater than 0", coefficient))
	}

	return CalculatePriceQuery{
		basePrice:   basePrice,
		quantity:    quantity,
		unit:        unit,
		coefficient: coefficient,
		properties:  properties,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// BasePrice returns the starting price before modifiers.
func (q CalculatePriceQuery) BasePrice() float64 {
	return q.basePrice
}

// Quantity returns the number of units being quoted.
func (q CalculatePriceQuery) Quantity() float64 {
	return q.quantity
}

// Unit returns the unit measurement multiplier.
func (q CalculatePriceQuery) Unit() float64 {
	return q.unit
}

// Coefficient returns the final adjustment coefficient.
func (q CalculatePriceQuery) Coefficient() float64 {
	return q.coefficient
}

// Properties returns the property snapshot for applicability checks.
func (q CalculatePriceQuery) Properties() map[string]string {
	return q.properties
}

// Validate ensures the query was created through the constructor.
// Returns ErrCalculatePriceQueryIsNotConstructed if validation fails.
func (q CalculatePriceQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePriceQueryIsNotConstructed)
}

// CalculatePriceQueryResponse is the price quote read model: the computed
// prices, the modifiers that fired in application order, and the running
// price after each calculation stage.
type CalculatePriceQueryResponse struct {
	BasePrice        float64
	FinalPrice       float64
	TotalPrice       float64
	AppliedModifiers []AppliedModifierResponse
	Breakdown        BreakdownResponse
}

// AppliedModifierResponse describes one modifier that fired during a quote.
// Delta is the change the modifier made to the running price.
type AppliedModifierResponse struct {
	Code  string
	Name  string
	Type  string
	Value float64
	Delta float64
}

// BreakdownResponse exposes the running price after each calculation stage.
type BreakdownResponse struct {
	AfterModifiers   float64
	AfterUnit        float64
	AfterCoefficient float64
	AfterQuantity    float64
}
