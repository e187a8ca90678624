package commands

import (
	"context"
	"fmt"

	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/pkg/errs"
)

// CreatePriceModifierCommandHandler registers new price modifiers.
type CreatePriceModifierCommandHandler struct {
	uowFactory ModifierUoWFactory
}

// NewCreatePriceModifierCommandHandler creates a handler for modifier creation.
func NewCreatePriceModifierCommandHandler(uowFactory ModifierUoWFactory) CreatePriceModifierCommandHandler {
	return CreatePriceModifierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks code uniqueness and persists a new active modifier. The
// uniqueness check runs inside the transaction so two concurrent creations
// of the same code cannot both succeed.
func (h *CreatePriceModifierCommandHandler) Handle(ctx context.Context, cmd CreatePriceModifierCommand) error {
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

	exists, err := modifierRepo.ExistsByCode(ctx, cmd.Code())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewValueIsInvalidErrorWithCause("code",
			fmt.Errorf("modifier with code %q already exists", cmd.Code()))
	}

	aggregate, err := pricing.NewPriceModifier(
		cmd.ModifierID(), cmd.Code(), cmd.Name(), cmd.ModifierType(),
		cmd.Value(), cmd.Priority(), cmd.Options(),
	)
	if err != nil {
		return err
	}

	if err = modifierRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
