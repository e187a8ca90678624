package queries_test

import (
	"testing"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/model/product"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogProduct(t *testing.T) *product.Product {
	t.Helper()

	basePrice, err := kernel.NewMoneyFromFloat(1000)
	require.NoError(t, err)

	// 2000x500mm of area pricing gives a unit measurement of exactly 1.
	dimensions, err := product.NewDimensions(2000, 500)
	require.NoError(t, err)

	p, err := product.NewProduct(kernel.NewUUID(), "Cabinet Front", basePrice, product.Area, dimensions, nil)
	require.NoError(t, err)
	return p
}

func TestCalculateProductPriceQueryHandler_Handle(t *testing.T) {
	t.Run("should quote product with default dimensions", func(t *testing.T) {
		prod := newCatalogProduct(t)

		productRepo := &MockProductRepository{}
		productRepo.On("Get", t.Context(), prod.ID()).Return(prod, nil)
		modifierRepo := &MockModifierRepository{}
		modifierRepo.On("GetAllActive", t.Context()).Return([]*pricing.PriceModifier{
			newActiveModifier(t, "VAT", pricing.Percentage, 10, 20),
		}, nil)

		handler := queries.NewCalculateProductPriceQueryHandler(productRepo, modifierRepo, stubEvaluator{})
		query, err := queries.NewCalculateProductPriceQuery(prod.ID(), 2, 0, 0, 0, nil)
		require.NoError(t, err)

		quote, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.True(t, prod.ID().IsEqual(quote.ProductID))
		assert.Equal(t, "Cabinet Front", quote.ProductName)
		assert.InEpsilon(t, 1000.0, quote.BasePrice, 1e-9)
		assert.InEpsilon(t, 1100.0, quote.UnitPrice, 1e-9)
		assert.InEpsilon(t, 1100.0, quote.Subtotal, 1e-9)
		assert.InEpsilon(t, 2200.0, quote.FinalPrice, 1e-9)
		assert.InEpsilon(t, 2000.0, quote.LengthMM, 1e-9)
		require.Len(t, quote.AppliedModifiers, 1)
		assert.Equal(t, "VAT", quote.AppliedModifiers[0].Code)
		productRepo.AssertExpectations(t)
		modifierRepo.AssertExpectations(t)
	})

	t.Run("should scale quote by overridden dimensions", func(t *testing.T) {
		prod := newCatalogProduct(t)

		productRepo := &MockProductRepository{}
		productRepo.On("Get", t.Context(), prod.ID()).Return(prod, nil)
		modifierRepo := &MockModifierRepository{}
		modifierRepo.On("GetAllActive", t.Context()).Return([]*pricing.PriceModifier{}, nil)

		handler := queries.NewCalculateProductPriceQueryHandler(productRepo, modifierRepo, stubEvaluator{})
		// 1000x500mm is half a square metre.
		query, err := queries.NewCalculateProductPriceQuery(prod.ID(), 1, 0, 1000, 500, nil)
		require.NoError(t, err)

		quote, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.InEpsilon(t, 1000.0, quote.UnitPrice, 1e-9)
		assert.InEpsilon(t, 500.0, quote.Subtotal, 1e-9)
		assert.InEpsilon(t, 500.0, quote.FinalPrice, 1e-9)
		assert.InEpsilon(t, 1000.0, quote.LengthMM, 1e-9)
		assert.InEpsilon(t, 500.0, quote.WidthMM, 1e-9)
	})

	t.Run("should fail when the product does not exist", func(t *testing.T) {
		missingID := kernel.NewUUID()

		productRepo := &MockProductRepository{}
		productRepo.On("Get", t.Context(), missingID).
			Return(nil, errs.NewObjectNotFoundError("product", missingID.String()))
		modifierRepo := &MockModifierRepository{}

		handler := queries.NewCalculateProductPriceQueryHandler(productRepo, modifierRepo, stubEvaluator{})
		query, err := queries.NewCalculateProductPriceQuery(missingID, 1, 0, 0, 0, nil)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		modifierRepo.AssertNotCalled(t, "GetAllActive", mock.Anything)
	})

	t.Run("should reject query not built via constructor", func(t *testing.T) {
		productRepo := &MockProductRepository{}
		modifierRepo := &MockModifierRepository{}
		handler := queries.NewCalculateProductPriceQueryHandler(productRepo, modifierRepo, stubEvaluator{})

		_, err := handler.Handle(t.Context(), queries.CalculateProductPriceQuery{})

		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrCalculateProductPriceQueryIsNotConstructed)
		productRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
