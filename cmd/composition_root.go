package cmd

import (
	"log/slog"
	"os"

	"workshop/internal/adapters/out/postgres"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/services"
	"workshop/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) modifierUoWFactory() commands.ModifierUoWFactory {
	return FuncModifierUoWFactory(func() commands.ModifierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pricingUoWFactory() commands.PricingUoWFactory {
	return FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) conditionEvaluator() pricing.ConditionEvaluator {
	return services.NewPropertyConditionEvaluator()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderInfoCommandHandler() commands.UpdateOrderInfoCommandHandler {
	return commands.NewUpdateOrderInfoCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePaymentStatusCommandHandler() commands.UpdatePaymentStatusCommandHandler {
	return commands.NewUpdatePaymentStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateLockOrderCommandHandler() commands.LockOrderCommandHandler {
	return commands.NewLockOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUnlockOrderCommandHandler() commands.UnlockOrderCommandHandler {
	return commands.NewUnlockOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUnlockExpiredOrdersCommandHandler() commands.UnlockExpiredOrdersCommandHandler {
	return commands.NewUnlockExpiredOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddSectionCommandHandler() commands.AddSectionCommandHandler {
	return commands.NewAddSectionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveSectionCommandHandler() commands.RemoveSectionCommandHandler {
	return commands.NewRemoveSectionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddItemToSectionCommandHandler() commands.AddItemToSectionCommandHandler {
	return commands.NewAddItemToSectionCommandHandler(
		c.pricingUoWFactory(),
		services.NewPriceCalculator(),
		c.conditionEvaluator(),
	)
}

func (c *CompositionRoot) CreateRemoveItemFromSectionCommandHandler() commands.RemoveItemFromSectionCommandHandler {
	return commands.NewRemoveItemFromSectionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreatePriceModifierCommandHandler() commands.CreatePriceModifierCommandHandler {
	return commands.NewCreatePriceModifierCommandHandler(c.modifierUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePriceModifierCommandHandler() commands.UpdatePriceModifierCommandHandler {
	return commands.NewUpdatePriceModifierCommandHandler(c.modifierUoWFactory())
}

func (c *CompositionRoot) CreateActivatePriceModifierCommandHandler() commands.ActivatePriceModifierCommandHandler {
	return commands.NewActivatePriceModifierCommandHandler(c.modifierUoWFactory())
}

func (c *CompositionRoot) CreateDeactivatePriceModifierCommandHandler() commands.DeactivatePriceModifierCommandHandler {
	return commands.NewDeactivatePriceModifierCommandHandler(c.modifierUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCalculatePriceQueryHandler() queries.CalculatePriceQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewCalculatePriceQueryHandler(uow.ModifierRepository(), c.conditionEvaluator())
}

func (c *CompositionRoot) CreateCalculateProductPriceQueryHandler() queries.CalculateProductPriceQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewCalculateProductPriceQueryHandler(
		uow.ProductRepository(),
		uow.ModifierRepository(),
		c.conditionEvaluator(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateUnlockExpiredOrdersCommandHandler(),
		c.config.LockTimeout,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncModifierUoWFactory func() commands.ModifierUoW

func (f FuncModifierUoWFactory) Create() commands.ModifierUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}
