package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Generates the next sequential order number and persists a new draft order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// The order number is generated inside the transaction so concurrent
// creations cannot observe the same sequence value.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	orderNumber, err := orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), orderNumber, cmd.ClientID(), cmd.ClientName(),
		cmd.Deadline(), cmd.Notes(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
