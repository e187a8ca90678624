package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// CalculatePriceQueryHandler produces price quotes from the active modifier
// catalog. The catalog is read outside any transaction: a quote is an
// estimate, not a reservation.
//
// Example:
//
//	handler := NewCalculatePriceQueryHandler(modifierRepository, evaluator)
//	query, _ := NewCalculatePriceQuery(1000, 1, 1, 1, nil)
//
//	quote, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to calculate price: %v", err)
//	    return err
//	}
type CalculatePriceQueryHandler struct {
	modifiers  ports.ModifierRepository
	calculator services.PriceCalculator
	evaluator  pricing.ConditionEvaluator
}

// NewCalculatePriceQueryHandler creates a handler for price quote queries.
func NewCalculatePriceQueryHandler(
	modifiers ports.ModifierRepository,
	evaluator pricing.ConditionEvaluator,
) CalculatePriceQueryHandler {
	return CalculatePriceQueryHandler{
		modifiers:  modifiers,
		calculator: services.NewPriceCalculator(),
		evaluator:  evaluator,
	}
}

// Handle loads the active modifiers and runs the calculation engine over
// the query's input, quoting as of the current time.
func (h CalculatePriceQueryHandler) Handle(
	ctx context.Context,
	query CalculatePriceQuery,
) (CalculatePriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculatePriceQueryResponse{}, err
	}

	modifiers, err := h.modifiers.GetAllActive(ctx)
	if err != nil {
		return CalculatePriceQueryResponse{}, err
	}

	basePrice, err := kernel.NewMoneyFromFloat(query.BasePrice())
	if err != nil {
		return CalculatePriceQueryResponse{}, err
	}

	result, err := h.calculator.Calculate(services.CalculationContext{
		BasePrice:   basePrice,
		Quantity:    query.Quantity(),
		Unit:        query.Unit(),
		Coefficient: query.Coefficient(),
		Properties:  query.Properties(),
	}, modifiers, h.evaluator, time.Now())
	if err != nil {
		return CalculatePriceQueryResponse{}, err
	}

	return CalculatePriceQueryResponse{
		BasePrice:        result.BasePrice.Float64(),
		FinalPrice:       result.FinalPrice.Float64(),
		TotalPrice:       result.TotalPrice.Float64(),
		AppliedModifiers: toAppliedModifierResponses(result.AppliedModifiers),
		Breakdown: BreakdownResponse{
			AfterModifiers:   result.Breakdown.AfterModifiers.Float64(),
			AfterUnit:        result.Breakdown.AfterUnit.Float64(),
			AfterCoefficient: result.Breakdown.AfterCoefficient.Float64(),
			AfterQuantity:    result.Breakdown.AfterQuantity.Float64(),
		},
	}, nil
}

func toAppliedModifierResponses(applied []services.AppliedModifier) []AppliedModifierResponse {
	responses := make([]AppliedModifierResponse, 0, len(applied))
	for _, m := range applied {
		responses = append(responses, AppliedModifierResponse{
			Code:  m.Code,
			Name:  m.Name,
			Type:  m.Type.String(),
			Value: m.Value.InexactFloat64(),
			Delta: m.Delta.Float64(),
		})
	}
	return responses
}
