package services_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/model/product"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDimensions(t *testing.T, lengthMM, widthMM float64) product.Dimensions {
	t.Helper()
	d, err := product.NewDimensions(lengthMM, widthMM)
	require.NoError(t, err)
	return d
}

// newAreaProduct builds a product priced per square meter with a default
// panel of 2000x500mm, i.e. a unit measurement of exactly 1.
func newAreaProduct(t *testing.T, defaultProperties ...product.PropertyActivation) *product.Product {
	t.Helper()
	p, err := product.NewProduct(
		kernel.NewUUID(), "Wall panel", mustMoney(t, 1000), product.Area,
		mustDimensions(t, 2000, 500), defaultProperties,
	)
	require.NoError(t, err)
	return p
}

func newBoundModifier(t *testing.T, code string, modifierType pricing.ModifierType, value float64, priority int, propertyID kernel.UUID, propertyValue string) *pricing.PriceModifier {
	t.Helper()
	m, err := pricing.NewPriceModifier(
		kernel.NewUUID(), code, "Modifier "+code, modifierType,
		decimal.NewFromFloat(value), priority,
		pricing.ModifierOptions{PropertyID: &propertyID, PropertyValue: &propertyValue},
	)
	require.NoError(t, err)
	return m
}

func TestProductPriceCalculatorCalculateForProduct(t *testing.T) {
	calculator := services.NewProductPriceCalculator()
	now := time.Now()
	ctx := services.ProductCalculationContext{Quantity: 1}

	t.Run("should price a bare product by its unit measurement", func(t *testing.T) {
		result, err := calculator.CalculateForProduct(newAreaProduct(t), ctx, nil, nil, now)

		require.NoError(t, err)
		assert.True(t, result.BasePrice.IsEqual(mustMoney(t, 1000)))
		assert.True(t, result.UnitPrice.IsEqual(mustMoney(t, 1000)))
		assert.True(t, result.ModifiedUnitPrice.IsEqual(mustMoney(t, 1000)))
		assert.True(t, result.Subtotal.IsEqual(result.ModifiedUnitPrice))
		assert.True(t, result.FinalPrice.IsEqual(mustMoney(t, 1000)))
		assert.Empty(t, result.ModifiersApplied)
	})

	t.Run("should apply additive phase before multiplicative phase", func(t *testing.T) {
		// (1000 + 200) × 1.1 = 1320, then × 2 = 2640. The multiplier carries
		// the lowest priority yet still runs last: phase ordering wins.
		modifiers := []*pricing.PriceModifier{
			newModifier(t, "DOUBLE", pricing.Multiplier, 2, 1),
			newModifier(t, "VAT", pricing.Percentage, 10, 3),
			newModifier(t, "SURCHARGE", pricing.FixedAmount, 200, 2),
		}

		result, err := calculator.CalculateForProduct(newAreaProduct(t), ctx, modifiers, nil, now)

		require.NoError(t, err)
		assert.True(t, result.UnitPrice.IsEqual(mustMoney(t, 2640)),
			"unit price %s, expected 2640", result.UnitPrice)

		require.Len(t, result.ModifiersApplied, 3)
		assert.Equal(t, "SURCHARGE", result.ModifiersApplied[0].Code)
		assert.Equal(t, "VAT", result.ModifiersApplied[1].Code)
		assert.Equal(t, "DOUBLE", result.ModifiersApplied[2].Code)
	})

	t.Run("should ignore modifier types outside both phases", func(t *testing.T) {
		modifiers := []*pricing.PriceModifier{
			newModifier(t, "FLAT", pricing.FixedPrice, 750, 1),
			newModifier(t, "PER_M", pricing.PerUnit, 800, 2),
		}

		result, err := calculator.CalculateForProduct(newAreaProduct(t), ctx, modifiers, nil, now)

		require.NoError(t, err)
		assert.True(t, result.UnitPrice.IsEqual(mustMoney(t, 1000)))
		assert.Empty(t, result.ModifiersApplied)
	})

	t.Run("should scale by overridden dimensions", func(t *testing.T) {
		// 1000x500mm = 0.5 m² against the product's default of 1 m².
		override := mustDimensions(t, 1000, 500)
		overriddenCtx := ctx
		overriddenCtx.Dimensions = &override

		result, err := calculator.CalculateForProduct(newAreaProduct(t), overriddenCtx, nil, nil, now)

		require.NoError(t, err)
		assert.True(t, result.Dimensions.IsEqual(override))
		assert.True(t, result.ModifiedUnitPrice.IsEqual(mustMoney(t, 500)))
		assert.True(t, result.FinalPrice.IsEqual(mustMoney(t, 500)))
	})

	t.Run("should scale length only for linear products", func(t *testing.T) {
		p, err := product.NewProduct(
			kernel.NewUUID(), "Skirting board", mustMoney(t, 100), product.Linear,
			mustDimensions(t, 2500, 80), nil,
		)
		require.NoError(t, err)

		result, err := calculator.CalculateForProduct(p, ctx, nil, nil, now)

		require.NoError(t, err)
		assert.True(t, result.ModifiedUnitPrice.IsEqual(mustMoney(t, 250)))
	})

	t.Run("should default zero coefficient to one and fold in quantity", func(t *testing.T) {
		quantityCtx := services.ProductCalculationContext{Quantity: 3, Coefficient: 0}

		result, err := calculator.CalculateForProduct(newAreaProduct(t), quantityCtx, nil, nil, now)

		require.NoError(t, err)
		assert.True(t, result.FinalPrice.IsEqual(mustMoney(t, 3000)))
	})

	t.Run("should match modifiers against active default properties", func(t *testing.T) {
		propertyID := kernel.NewUUID()
		activation, err := product.NewPropertyActivation(propertyID, "oak", true)
		require.NoError(t, err)
		p := newAreaProduct(t, activation)

		modifiers := []*pricing.PriceModifier{
			newBoundModifier(t, "OAK_SURCHARGE", pricing.FixedAmount, 300, 1, propertyID, "oak"),
		}

		result, err := calculator.CalculateForProduct(p, ctx, modifiers, nil, now)

		require.NoError(t, err)
		assert.True(t, result.UnitPrice.IsEqual(mustMoney(t, 1300)))
	})

	t.Run("should let caller-selected properties override defaults", func(t *testing.T) {
		propertyID := kernel.NewUUID()
		activation, err := product.NewPropertyActivation(propertyID, "oak", true)
		require.NoError(t, err)
		p := newAreaProduct(t, activation)

		overlayCtx := ctx
		overlayCtx.Properties = map[string]string{propertyID.String(): "birch"}
		modifiers := []*pricing.PriceModifier{
			newBoundModifier(t, "OAK_SURCHARGE", pricing.FixedAmount, 300, 1, propertyID, "oak"),
			newBoundModifier(t, "BIRCH_SURCHARGE", pricing.FixedAmount, 100, 2, propertyID, "birch"),
		}

		result, err := calculator.CalculateForProduct(p, overlayCtx, modifiers, nil, now)

		require.NoError(t, err)
		assert.True(t, result.UnitPrice.IsEqual(mustMoney(t, 1100)))
	})

	t.Run("should let caller re-activate a normally inactive property", func(t *testing.T) {
		propertyID := kernel.NewUUID()
		activation, err := product.NewPropertyActivation(propertyID, "gloss", false)
		require.NoError(t, err)
		p := newAreaProduct(t, activation)

		modifiers := []*pricing.PriceModifier{
			newBoundModifier(t, "GLOSS_SURCHARGE", pricing.FixedAmount, 250, 1, propertyID, "gloss"),
		}

		// Inactive default: the modifier must not fire.
		result, err := calculator.CalculateForProduct(p, ctx, modifiers, nil, now)
		require.NoError(t, err)
		assert.True(t, result.UnitPrice.IsEqual(mustMoney(t, 1000)))

		// Caller selects it explicitly: now it fires.
		overlayCtx := ctx
		overlayCtx.Properties = map[string]string{propertyID.String(): "gloss"}
		result, err = calculator.CalculateForProduct(p, overlayCtx, modifiers, nil, now)
		require.NoError(t, err)
		assert.True(t, result.UnitPrice.IsEqual(mustMoney(t, 1250)))
	})

	t.Run("should fail on invalid context", func(t *testing.T) {
		badCtx := services.ProductCalculationContext{Quantity: 0}

		_, err := calculator.CalculateForProduct(newAreaProduct(t), badCtx, nil, nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail on negative coefficient", func(t *testing.T) {
		badCtx := services.ProductCalculationContext{Quantity: 1, Coefficient: -1}

		_, err := calculator.CalculateForProduct(newAreaProduct(t), badCtx, nil, nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail on unconstructed product", func(t *testing.T) {
		_, err := calculator.CalculateForProduct(&product.Product{}, ctx, nil, nil, now)

		require.Error(t, err)
	})
}
