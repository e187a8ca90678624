package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/services"
)

// AddItemToSectionCommandHandler prices a product item against the active
// modifier set and attaches it to an order section.
type AddItemToSectionCommandHandler struct {
	uowFactory PricingUoWFactory
	calculator services.PriceCalculator
	evaluator  pricing.ConditionEvaluator
}

// NewAddItemToSectionCommandHandler creates a handler for priced item
// addition. The evaluator may be nil when no condition-expression strategy
// is configured.
func NewAddItemToSectionCommandHandler(
	uowFactory PricingUoWFactory,
	calculator services.PriceCalculator,
	evaluator pricing.ConditionEvaluator,
) AddItemToSectionCommandHandler {
	return AddItemToSectionCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		evaluator:  evaluator,
	}
}

// Handle resolves the product, prices the item through the calculation
// engine with the currently active modifiers, and attaches the priced item
// to the target section. The whole operation runs in one transaction so the
// stored prices match the modifier set that produced them.
func (h *AddItemToSectionCommandHandler) Handle(ctx context.Context, cmd AddItemToSectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	prod, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	modifiers, err := uow.ModifierRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	properties := make(map[string]string, len(cmd.Properties()))
	for _, p := range cmd.Properties() {
		properties[p.PropertyID.String()] = p.Value
	}

	coefficient := cmd.Coefficient()
	if coefficient == 0 {
		coefficient = 1
	}

	result, err := h.calculator.Calculate(services.CalculationContext{
		BasePrice:   prod.BasePrice(),
		Quantity:    cmd.Quantity(),
		Unit:        cmd.Unit(),
		Coefficient: coefficient,
		Properties:  properties,
	}, modifiers, h.evaluator, time.Now())
	if err != nil {
		return err
	}

	itemProperties := make([]order.PropertyInOrder, 0, len(cmd.Properties()))
	for _, p := range cmd.Properties() {
		property, propErr := order.NewPropertyInOrder(
			p.PropertyID, p.PropertyCode, p.PropertyName, p.Value,
		)
		if propErr != nil {
			return propErr
		}
		itemProperties = append(itemProperties, property)
	}

	item, err := order.NewOrderItem(
		cmd.ItemID(), cmd.ProductID(), prod.Name(),
		cmd.Quantity(), cmd.Unit(), coefficient,
		order.ItemPrices{
			Base:  prod.BasePrice(),
			Final: result.FinalPrice,
			Total: result.TotalPrice,
		},
		itemProperties,
	)
	if err != nil {
		return err
	}

	if err = aggregate.AddItemToSection(cmd.SectionNumber(), item); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
