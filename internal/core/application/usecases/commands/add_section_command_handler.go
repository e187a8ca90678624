package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

// AddSectionCommandHandler attaches a new section to an existing order.
type AddSectionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddSectionCommandHandler creates a handler for section addition.
func NewAddSectionCommandHandler(uowFactory OrderUoWFactory) AddSectionCommandHandler {
	return AddSectionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, attaches the section through the aggregate and
// persists the result. The aggregate enforces modifiability, uniqueness of
// the section number and the section ceiling.
func (h *AddSectionCommandHandler) Handle(ctx context.Context, cmd AddSectionCommand) error {
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

	section, err := order.NewOrderSection(
		cmd.SectionNumber(), cmd.Name(), cmd.HeaderID(), cmd.Description(),
	)
	if err != nil {
		return err
	}

	if err = aggregate.AddSection(section); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
