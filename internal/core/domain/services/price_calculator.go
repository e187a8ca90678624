package services

import (
	"fmt"
	"sort"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CalculationContext carries the caller-supplied inputs of a generic price
// calculation: a base price plus the quantity, unit measurement, coefficient
// and the property values the modifier chain is matched against.
type CalculationContext struct {
	BasePrice   kernel.Money
	Quantity    float64
	Unit        float64
	Coefficient float64
	Properties  map[string]string
}

// Validate checks the context bounds before any computation happens.
//
// Bounds:
//   - BasePrice must be constructed and non-negative
//   - Quantity, Unit and Coefficient must be strictly positive
func (c CalculationContext) Validate() error {
	if err := c.BasePrice.Validate(); err != nil {
		return err
	}
	if c.BasePrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("basePrice",
			fmt.Errorf("%s is negative", c.BasePrice))
	}
	if c.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%v is not greater than 0", c.Quantity))
	}
	if c.Unit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit",
			fmt.Errorf("%v is not greater than 0", c.Unit))
	}
	if c.Coefficient <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("coefficient",
			fmt.Errorf("%v is not greater than 0", c.Coefficient))
	}
	return nil
}

// AppliedModifier is one audit entry of a calculation: which modifier fired
// and how it moved the running price.
type AppliedModifier struct {
	Code  string
	Name  string
	Type  pricing.ModifierType
	Value decimal.Decimal
	Delta kernel.Money
}

// Breakdown exposes the running price after each stage of the calculation,
// so callers can show how the final price was reached.
type Breakdown struct {
	AfterModifiers   kernel.Money
	AfterUnit        kernel.Money
	AfterCoefficient kernel.Money
	AfterQuantity    kernel.Money
}

// PriceResult is the outcome of a generic price calculation.
type PriceResult struct {
	BasePrice        kernel.Money
	FinalPrice       kernel.Money
	TotalPrice       kernel.Money
	AppliedModifiers []AppliedModifier
	Breakdown        Breakdown
}

// PriceCalculator is a domain service implementing the generic price
// calculation: a single running price walked through the applicable
// modifiers in priority order.
//
// Key responsibilities:
//   - Validating the calculation context before any computation
//   - Filtering candidate modifiers by applicability
//   - Applying modifiers deterministically in ascending priority order
//   - Producing a per-step audit trail and a stage breakdown
//
// Business rules:
//   - FIXED_PRICE and PER_UNIT replace the running price, discarding
//     everything accumulated before them
//   - A PER_UNIT modifier folds the unit measurement into the running price,
//     so the later multiply-by-unit step is suppressed
//   - Modifiers with equal priority keep their incoming order (stable sort)
//
// The service is pure and stateless: concurrent calculations are independent.
type PriceCalculator struct{}

// NewPriceCalculator creates a new PriceCalculator instance.
func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Calculate runs the generic pricing algorithm over the candidate modifiers.
//
// Parameters:
//   - ctx: calculation inputs (validated before computation)
//   - modifiers: candidate modifiers; filtered by applicability, then applied
//     in ascending priority order
//   - evaluator: optional condition-expression strategy passed through to
//     applicability checks (may be nil)
//   - asOf: the instant time windows and expressions are evaluated against
//
// Returns:
//   - PriceResult: final and total price with audit entries and breakdown
//   - error: context bound violations or invalid modifiers
func (pc PriceCalculator) Calculate(
	ctx CalculationContext,
	modifiers []*pricing.PriceModifier,
	evaluator pricing.ConditionEvaluator,
	asOf time.Time,
) (PriceResult, error) {
	if err := ctx.Validate(); err != nil {
		return PriceResult{}, err
	}

	applicable, err := pc.selectApplicable(ctx.Properties, modifiers, evaluator, asOf)
	if err != nil {
		return PriceResult{}, err
	}

	price := ctx.BasePrice
	applied := make([]AppliedModifier, 0, len(applicable))
	perUnitApplied := false

	for _, m := range applicable {
		before := price

		switch m.Type() {
		case pricing.FixedPrice:
			price = kernel.NewMoney(m.Value())
		case pricing.Percentage:
			price = price.Mul(decimal.NewFromInt(1).Add(m.Value().Div(decimal.NewFromInt(100))))
		case pricing.FixedAmount:
			price = price.Add(kernel.NewMoney(m.Value()))
		case pricing.PerUnit:
			price = kernel.NewMoney(m.Value()).MulFloat(ctx.Unit)
			perUnitApplied = true
		case pricing.Multiplier:
			price = price.Mul(m.Value())
		case pricing.UnknownType:
			return PriceResult{}, errs.NewValueIsInvalidError("modifierType")
		}

		applied = append(applied, AppliedModifier{
			Code:  m.Code(),
			Name:  m.Name(),
			Type:  m.Type(),
			Value: m.Value(),
			Delta: price.Sub(before),
		})
	}

	var breakdown Breakdown
	breakdown.AfterModifiers = price

	// PER_UNIT already folded the unit measurement into the running price.
	if !perUnitApplied {
		price = price.MulFloat(ctx.Unit)
	}
	breakdown.AfterUnit = price

	finalPrice := price.MulFloat(ctx.Coefficient)
	breakdown.AfterCoefficient = finalPrice

	totalPrice := finalPrice.MulFloat(ctx.Quantity)
	breakdown.AfterQuantity = totalPrice

	return PriceResult{
		BasePrice:        ctx.BasePrice,
		FinalPrice:       finalPrice,
		TotalPrice:       totalPrice,
		AppliedModifiers: applied,
		Breakdown:        breakdown,
	}, nil
}

// selectApplicable validates the candidates, filters them by applicability
// for the given property values, and orders them by ascending priority.
// Equal priorities keep their incoming order, so the application sequence
// is deterministic for a fixed priority assignment.
func (pc PriceCalculator) selectApplicable(
	properties map[string]string,
	modifiers []*pricing.PriceModifier,
	evaluator pricing.ConditionEvaluator,
	asOf time.Time,
) ([]*pricing.PriceModifier, error) {
	applicable := make([]*pricing.PriceModifier, 0, len(modifiers))
	for _, m := range modifiers {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if m.IsApplicableFor(properties, asOf, evaluator) {
			applicable = append(applicable, m)
		}
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority() < applicable[j].Priority()
	})

	return applicable, nil
}
