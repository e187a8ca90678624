package commands

import (
	"context"
)

// RemoveItemFromSectionCommandHandler detaches an item from an order section.
type RemoveItemFromSectionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveItemFromSectionCommandHandler creates a handler for item removal.
func NewRemoveItemFromSectionCommandHandler(uowFactory OrderUoWFactory) RemoveItemFromSectionCommandHandler {
	return RemoveItemFromSectionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, removes the item through the aggregate and
// persists the result.
func (h *RemoveItemFromSectionCommandHandler) Handle(ctx context.Context, cmd RemoveItemFromSectionCommand) error {
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

	if err = aggregate.RemoveItemFromSection(cmd.SectionNumber(), cmd.ItemID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
