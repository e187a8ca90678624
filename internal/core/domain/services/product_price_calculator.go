package services

import (
	"fmt"
	"sort"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/model/product"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ProductCalculationContext carries the caller-supplied inputs of a
// product-driven price calculation. Dimensions and properties are optional
// overrides on top of the product's defaults.
type ProductCalculationContext struct {
	Quantity    float64
	Coefficient float64
	Dimensions  *product.Dimensions
	Properties  map[string]string
}

// Validate checks the context bounds before any computation happens.
// A zero coefficient is allowed and treated as one; a negative one is not.
func (c ProductCalculationContext) Validate() error {
	if c.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%v is not greater than 0", c.Quantity))
	}
	if c.Coefficient < 0 {
		return errs.NewValueIsInvalidErrorWithCause("coefficient",
			fmt.Errorf("%v is negative", c.Coefficient))
	}
	if c.Dimensions != nil {
		if err := c.Dimensions.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProductPriceResult is the outcome of a product-driven price calculation.
//
// UnitPrice is the per-unit price after all modifiers; ModifiedUnitPrice is
// the unit price scaled by the unit measurement of the effective dimensions;
// Subtotal equals ModifiedUnitPrice; FinalPrice folds in the coefficient and
// quantity.
type ProductPriceResult struct {
	BasePrice         kernel.Money
	UnitPrice         kernel.Money
	ModifiedUnitPrice kernel.Money
	Dimensions        product.Dimensions
	ModifiersApplied  []AppliedModifier
	Subtotal          kernel.Money
	FinalPrice        kernel.Money
}

// ProductPriceCalculator is a domain service implementing the product and
// dimension driven price calculation.
//
// Unlike PriceCalculator, this variant does not walk one running price
// through the whole chain: applicable modifiers are split into an additive
// group (fixed amounts and percentages) applied to the base price first, and
// a multiplicative group applied to that intermediate result. PER_UNIT and
// FIXED_PRICE modifiers take no part in this variant. The two engines are
// deliberately kept as separate code paths; whether their divergence is
// intentional is an open question for the product owners.
type ProductPriceCalculator struct{}

// NewProductPriceCalculator creates a new ProductPriceCalculator instance.
func NewProductPriceCalculator() ProductPriceCalculator {
	return ProductPriceCalculator{}
}

// CalculateForProduct runs the product-driven pricing algorithm.
//
// Parameters:
//   - p: the resolved product supplying base price, unit type, default
//     dimensions and default property activations
//   - ctx: calculation inputs; explicit dimensions and properties override
//     the product's defaults
//   - modifiers: candidate modifiers; filtered by applicability against the
//     effective property set, then applied phase by phase in ascending
//     priority order
//   - evaluator: optional condition-expression strategy (may be nil)
//   - asOf: the instant time windows and expressions are evaluated against
//
// Steps:
//  1. Resolve effective dimensions: explicit overrides win, else defaults.
//  2. Compute the unit measurement scalar from the product's unit type.
//  3. Build the effective property set: active product defaults overlaid
//     with caller-selected properties (caller always wins and may
//     re-activate a normally inactive property).
//  4. Apply the additive group to the base price, then the multiplicative
//     group to the result, producing the unit price.
//  5. Scale by unit measurement, coefficient (default 1) and quantity.
func (pc ProductPriceCalculator) CalculateForProduct(
	p *product.Product,
	ctx ProductCalculationContext,
	modifiers []*pricing.PriceModifier,
	evaluator pricing.ConditionEvaluator,
	asOf time.Time,
) (ProductPriceResult, error) {
	if err := p.Validate(); err != nil {
		return ProductPriceResult{}, err
	}
	if err := ctx.Validate(); err != nil {
		return ProductPriceResult{}, err
	}

	dimensions := p.DefaultDimensions()
	if ctx.Dimensions != nil {
		dimensions = *ctx.Dimensions
	}
	unitMeasurement := dimensions.UnitMeasurement(p.UnitType())

	properties := pc.effectiveProperties(p, ctx.Properties)

	additive, multiplicative, err := pc.splitApplicable(properties, modifiers, evaluator, asOf)
	if err != nil {
		return ProductPriceResult{}, err
	}

	price := p.BasePrice()
	applied := make([]AppliedModifier, 0, len(additive)+len(multiplicative))

	for _, m := range additive {
		before := price

		//nolint:exhaustive // the additive group holds only these two types
		switch m.Type() {
		case pricing.FixedAmount:
			price = price.Add(kernel.NewMoney(m.Value()))
		case pricing.Percentage:
			price = price.Mul(decimal.NewFromInt(1).Add(m.Value().Div(decimal.NewFromInt(100))))
		}

		applied = append(applied, AppliedModifier{
			Code:  m.Code(),
			Name:  m.Name(),
			Type:  m.Type(),
			Value: m.Value(),
			Delta: price.Sub(before),
		})
	}

	for _, m := range multiplicative {
		before := price
		price = price.Mul(m.Value())

		applied = append(applied, AppliedModifier{
			Code:  m.Code(),
			Name:  m.Name(),
			Type:  m.Type(),
			Value: m.Value(),
			Delta: price.Sub(before),
		})
	}

	unitPrice := price
	modifiedUnitPrice := unitPrice.Mul(unitMeasurement)

	coefficient := ctx.Coefficient
	if coefficient == 0 {
		coefficient = 1
	}

	finalPrice := modifiedUnitPrice.MulFloat(coefficient).MulFloat(ctx.Quantity)

	return ProductPriceResult{
		BasePrice:         p.BasePrice(),
		UnitPrice:         unitPrice,
		ModifiedUnitPrice: modifiedUnitPrice,
		Dimensions:        dimensions,
		ModifiersApplied:  applied,
		Subtotal:          modifiedUnitPrice,
		FinalPrice:        finalPrice,
	}, nil
}

// effectiveProperties overlays the caller-selected properties on top of the
// product's active defaults. The caller's values always win.
func (pc ProductPriceCalculator) effectiveProperties(
	p *product.Product,
	overrides map[string]string,
) map[string]string {
	properties := p.ActivePropertySnapshot()
	for key, value := range overrides {
		properties[key] = value
	}
	return properties
}

// splitApplicable filters the candidates by applicability and splits them
// into the additive and multiplicative phases, each ordered by ascending
// priority with stable ties. Types belonging to neither phase are skipped.
func (pc ProductPriceCalculator) splitApplicable(
	properties map[string]string,
	modifiers []*pricing.PriceModifier,
	evaluator pricing.ConditionEvaluator,
	asOf time.Time,
) (additive, multiplicative []*pricing.PriceModifier, err error) {
	for _, m := range modifiers {
		if err := m.Validate(); err != nil {
			return nil, nil, err
		}
		if !m.IsApplicableFor(properties, asOf, evaluator) {
			continue
		}

		switch {
		case m.Type().IsAdditivePhase():
			additive = append(additive, m)
		case m.Type().IsMultiplicativePhase():
			multiplicative = append(multiplicative, m)
		}
	}

	byPriority := func(modifiers []*pricing.PriceModifier) {
		sort.SliceStable(modifiers, func(i, j int) bool {
			return modifiers[i].Priority() < modifiers[j].Priority()
		})
	}
	byPriority(additive)
	byPriority(multiplicative)

	return additive, multiplicative, nil
}
