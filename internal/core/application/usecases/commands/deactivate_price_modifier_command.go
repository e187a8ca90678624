package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrDeactivatePriceModifierCommandIsNotConstructed = errors.New(
	"DeactivatePriceModifierCommand must be created via NewDeactivatePriceModifierCommand constructor",
)

// DeactivatePriceModifierCommand represents a request to withdraw a modifier
// from the active calculation set without deleting it.
type DeactivatePriceModifierCommand struct { //nolint:recvcheck //using for validation
	modifierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivatePriceModifierCommand creates a command to deactivate a price modifier.
func NewDeactivatePriceModifierCommand(modifierID kernel.UUID) (DeactivatePriceModifierCommand, error) {
	cmd := DeactivatePriceModifierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := modifierID.Validate(); err != nil {
		return DeactivatePriceModifierCommand{}, err
	}

	cmd.modifierID = modifierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivatePriceModifierCommand) Validate() error {
	return c.guard.Validate(ErrDeactivatePriceModifierCommandIsNotConstructed)
}

// ModifierID returns the identifier of the modifier to deactivate.
func (c DeactivatePriceModifierCommand) ModifierID() kernel.UUID {
	return c.modifierID
}
