package commands

import (
	"context"
)

// DeactivatePriceModifierCommandHandler withdraws a modifier from the active set.
type DeactivatePriceModifierCommandHandler struct {
	uowFactory ModifierUoWFactory
}

// NewDeactivatePriceModifierCommandHandler creates a handler for modifier deactivation.
func NewDeactivatePriceModifierCommandHandler(uowFactory ModifierUoWFactory) DeactivatePriceModifierCommandHandler {
	return DeactivatePriceModifierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the modifier and deactivates it. Deactivating an already
// inactive modifier fails in the aggregate.
func (h *DeactivatePriceModifierCommandHandler) Handle(ctx context.Context, cmd DeactivatePriceModifierCommand) error {
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

	modifierRepo := uow.ModifierRepository()

	aggregate, err := modifierRepo.Get(ctx, cmd.ModifierID())
	if err != nil {
		return err
	}

	if err = aggregate.Deactivate(); err != nil {
		return err
	}

	if err = modifierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
