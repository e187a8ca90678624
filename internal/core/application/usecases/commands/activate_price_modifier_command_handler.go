package commands

import (
	"context"
)

// ActivatePriceModifierCommandHandler re-activates a dormant price modifier.
type ActivatePriceModifierCommandHandler struct {
	uowFactory ModifierUoWFactory
}

// NewActivatePriceModifierCommandHandler creates a handler for modifier activation.
func NewActivatePriceModifierCommandHandler(uowFactory ModifierUoWFactory) ActivatePriceModifierCommandHandler {
	return ActivatePriceModifierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the modifier and activates it. Activating an already active
// modifier fails in the aggregate.
func (h *ActivatePriceModifierCommandHandler) Handle(ctx context.Context, cmd ActivatePriceModifierCommand) error {
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

	if err = aggregate.Activate(); err != nil {
		return err
	}

	if err = modifierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
