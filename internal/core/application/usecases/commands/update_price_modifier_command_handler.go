package commands

import (
	"context"
)

// UpdatePriceModifierCommandHandler changes a modifier's mutable attributes.
type UpdatePriceModifierCommandHandler struct {
	uowFactory ModifierUoWFactory
}

// NewUpdatePriceModifierCommandHandler creates a handler for modifier updates.
func NewUpdatePriceModifierCommandHandler(uowFactory ModifierUoWFactory) UpdatePriceModifierCommandHandler {
	return UpdatePriceModifierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the modifier and applies the update through the aggregate,
// which re-validates the value against the modifier's immutable type.
func (h *UpdatePriceModifierCommandHandler) Handle(ctx context.Context, cmd UpdatePriceModifierCommand) error {
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

	if err = aggregate.UpdateInfo(cmd.Name(), cmd.Value(), cmd.Priority(), cmd.Options()); err != nil {
		return err
	}

	if err = modifierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
