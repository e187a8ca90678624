package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrActivatePriceModifierCommandIsNotConstructed = errors.New(
	"ActivatePriceModifierCommand must be created via NewActivatePriceModifierCommand constructor",
)

// ActivatePriceModifierCommand represents a request to bring a modifier back
// into the active calculation set.
type ActivatePriceModifierCommand struct { //nolint:recvcheck //using for validation
	modifierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewActivatePriceModifierCommand creates a command to activate a price modifier.
func NewActivatePriceModifierCommand(modifierID kernel.UUID) (ActivatePriceModifierCommand, error) {
	cmd := ActivatePriceModifierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := modifierID.Validate(); err != nil {
		return ActivatePriceModifierCommand{}, err
	}

	cmd.modifierID = modifierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ActivatePriceModifierCommand) Validate() error {
	return c.guard.Validate(ErrActivatePriceModifierCommandIsNotConstructed)
}

// ModifierID returns the identifier of the modifier to activate.
func (c ActivatePriceModifierCommand) ModifierID() kernel.UUID {
	return c.modifierID
}
