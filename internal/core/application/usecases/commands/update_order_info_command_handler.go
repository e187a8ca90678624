package commands

import (
	"context"
)

// UpdateOrderInfoCommandHandler replaces an order's editable details.
type UpdateOrderInfoCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderInfoCommandHandler creates a handler for order info updates.
func NewUpdateOrderInfoCommandHandler(uowFactory OrderUoWFactory) UpdateOrderInfoCommandHandler {
	return UpdateOrderInfoCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order and updates its details through the aggregate,
// which rejects updates outside the modifiable statuses.
func (h *UpdateOrderInfoCommandHandler) Handle(ctx context.Context, cmd UpdateOrderInfoCommand) error {
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

	if err = aggregate.UpdateInfo(cmd.ClientName(), cmd.Deadline(), cmd.Notes()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
