package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/model/product"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// CalculateProductPriceQueryHandler produces quotes for cataloged products.
// Loads the product and the active modifier catalog, then runs the product
// calculation engine with the query's overrides.
//
// Example:
//
//	handler := NewCalculateProductPriceQueryHandler(productRepository, modifierRepository, evaluator)
//	query, _ := NewCalculateProductPriceQuery(productID, 1, 0, 0, 0, nil)
//
//	quote, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to calculate product price: %v", err)
//	    return err
//	}
type CalculateProductPriceQueryHandler struct {
	products   ports.ProductRepository
	modifiers  ports.ModifierRepository
	calculator services.ProductPriceCalculator
	evaluator  pricing.ConditionEvaluator
}

// NewCalculateProductPriceQueryHandler creates a handler for product quote queries.
func NewCalculateProductPriceQueryHandler(
	products ports.ProductRepository,
	modifiers ports.ModifierRepository,
	evaluator pricing.ConditionEvaluator,
) CalculateProductPriceQueryHandler {
	return CalculateProductPriceQueryHandler{
		products:   products,
		modifiers:  modifiers,
		calculator: services.NewProductPriceCalculator(),
		evaluator:  evaluator,
	}
}

// Handle loads the product and active modifiers, then quotes the product
// with the query's dimension and property overrides as of the current time.
func (h CalculateProductPriceQueryHandler) Handle(
	ctx context.Context,
	query CalculateProductPriceQuery,
) (CalculateProductPriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculateProductPriceQueryResponse{}, err
	}

	prod, err := h.products.Get(ctx, query.ProductID())
	if err != nil {
		return CalculateProductPriceQueryResponse{}, err
	}

	modifiers, err := h.modifiers.GetAllActive(ctx)
	if err != nil {
		return CalculateProductPriceQueryResponse{}, err
	}

	calcCtx := services.ProductCalculationContext{
		Quantity:    query.Quantity(),
		Coefficient: query.Coefficient(),
		Properties:  query.Properties(),
	}
	if query.HasDimensionsOverride() {
		dimensions, dimErr := product.NewDimensions(query.LengthMM(), query.WidthMM())
		if dimErr != nil {
			return CalculateProductPriceQueryResponse{}, dimErr
		}
		calcCtx.Dimensions = &dimensions
	}

	result, err := h.calculator.CalculateForProduct(prod, calcCtx, modifiers, h.evaluator, time.Now())
	if err != nil {
		return CalculateProductPriceQueryResponse{}, err
	}

	return CalculateProductPriceQueryResponse{
		ProductID:         prod.ID(),
		ProductName:       prod.Name(),
		BasePrice:         result.BasePrice.Float64(),
		ModifiedUnitPrice: result.ModifiedUnitPrice.Float64(),
		UnitPrice:         result.UnitPrice.Float64(),
		LengthMM:          result.Dimensions.Length(),
		WidthMM:           result.Dimensions.Width(),
		AppliedModifiers:  toAppliedModifierResponses(result.ModifiersApplied),
		Subtotal:          result.Subtotal.Float64(),
		FinalPrice:        result.FinalPrice.Float64(),
	}, nil
}
