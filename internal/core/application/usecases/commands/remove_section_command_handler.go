package commands

import (
	"context"
)

// RemoveSectionCommandHandler detaches a section from an existing order.
type RemoveSectionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveSectionCommandHandler creates a handler for section removal.
func NewRemoveSectionCommandHandler(uowFactory OrderUoWFactory) RemoveSectionCommandHandler {
	return RemoveSectionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, removes the section through the aggregate and
// persists the result.
func (h *RemoveSectionCommandHandler) Handle(ctx context.Context, cmd RemoveSectionCommand) error {
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

	if err = aggregate.RemoveSection(cmd.SectionNumber()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
