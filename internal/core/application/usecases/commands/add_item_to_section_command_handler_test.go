package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/model/product"
	"workshop/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDraftOrderWithSection(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2025-001", 42, "Acme Interiors", nil, "")
	require.NoError(t, err)
	section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
	require.NoError(t, err)
	require.NoError(t, o.AddSection(section))
	return o
}

func newCatalogProduct(t *testing.T, basePrice float64) *product.Product {
	t.Helper()
	price, err := kernel.NewMoneyFromFloat(basePrice)
	require.NoError(t, err)
	dims, err := product.NewDimensions(2000, 500)
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), "Cabinet door", price, product.Unit, dims, nil)
	require.NoError(t, err)
	return p
}

func TestAddItemToSectionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := newDraftOrderWithSection(t)
	catalogProduct := newCatalogProduct(t, 1000)

	surcharge, err := pricing.NewPriceModifier(
		kernel.NewUUID(), "SURCHARGE", "Handling surcharge", pricing.FixedAmount,
		decimal.NewFromInt(200), 1, pricing.ModifierOptions{},
	)
	require.NoError(t, err)
	vat, err := pricing.NewPriceModifier(
		kernel.NewUUID(), "VAT", "Value added tax", pricing.Percentage,
		decimal.NewFromInt(10), 2, pricing.ModifierOptions{},
	)
	require.NoError(t, err)

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddItemToSectionCommand(
		aggregate.ID(), 1, itemID, catalogProduct.ID(), 2, 1, 0, nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	modifierRepo := new(MockModifierRepository)
	uow := new(MockPricingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, catalogProduct.ID()).Return(catalogProduct, nil).Once(),
		uow.On("ModifierRepository").Return(modifierRepo).Once(),
		modifierRepo.On("GetAllActive", mock.Anything).
			Return([]*pricing.PriceModifier{surcharge, vat}, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPricingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToSectionCommandHandler(factory, services.NewPriceCalculator(), nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	// (1000 + 200) × 1.1 = 1320 per item, 2640 for two.
	require.Len(t, aggregate.Sections(), 1)
	items := aggregate.Sections()[0].Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].ID().IsEqual(itemID))
	assert.Equal(t, "Cabinet door", items[0].ProductName())

	expectedFinal, err := kernel.NewMoneyFromFloat(1320)
	require.NoError(t, err)
	expectedTotal, err := kernel.NewMoneyFromFloat(2640)
	require.NoError(t, err)
	assert.True(t, items[0].FinalPrice().IsEqual(expectedFinal),
		"final price %s, expected 1320", items[0].FinalPrice())
	assert.True(t, items[0].TotalPrice().IsEqual(expectedTotal))
	assert.True(t, aggregate.TotalAmount().IsEqual(expectedTotal))

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	modifierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddItemToSectionCommandHandler_Handle_MissingProduct(t *testing.T) {
	ctx := t.Context()
	aggregate := newDraftOrderWithSection(t)
	productID := kernel.NewUUID()

	cmd, err := commands.NewAddItemToSectionCommand(
		aggregate.ID(), 1, kernel.NewUUID(), productID, 1, 1, 0, nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockPricingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, productID).Return(nil, assertableNotFound(productID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPricingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddItemToSectionCommandHandler(factory, services.NewPriceCalculator(), nil)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAddItemToSectionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AddItemToSectionCommand{} // not constructed properly
	factory := new(MockPricingUoWFactory)
	h := commands.NewAddItemToSectionCommandHandler(factory, services.NewPriceCalculator(), nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
