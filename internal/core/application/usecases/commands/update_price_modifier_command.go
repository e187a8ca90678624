package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdatePriceModifierCommandIsNotConstructed = errors.New(
	"UpdatePriceModifierCommand must be created via NewUpdatePriceModifierCommand constructor",
)

// UpdatePriceModifierCommand represents a request to change a modifier's
// mutable attributes. The identifier, code and type are immutable.
type UpdatePriceModifierCommand struct { //nolint:recvcheck //using for validation
	modifierID kernel.UUID
	name       string
	value      decimal.Decimal
	priority   int
	options    pricing.ModifierOptions

	guard guard.ConstructorGuard
}

// NewUpdatePriceModifierCommand creates a command to update a price modifier.
// Type-specific value bounds are re-checked by the aggregate, which knows
// the modifier's immutable type.
func NewUpdatePriceModifierCommand(
	modifierID kernel.UUID,
	name string,
	value decimal.Decimal,
	priority int,
	options pricing.ModifierOptions,
) (UpdatePriceModifierCommand, error) {
	cmd := UpdatePriceModifierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := modifierID.Validate(); err != nil {
		return UpdatePriceModifierCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return UpdatePriceModifierCommand{}, errs.NewValueIsRequiredError("name")
	}

	cmd.modifierID = modifierID
	cmd.name = name
	cmd.value = value
	cmd.priority = priority
	cmd.options = options
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePriceModifierCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePriceModifierCommandIsNotConstructed)
}

// ModifierID returns the identifier of the modifier being changed.
func (c UpdatePriceModifierCommand) ModifierID() kernel.UUID {
	return c.modifierID
}

// Name returns the new display name.
func (c UpdatePriceModifierCommand) Name() string {
	return c.name
}

// Value returns the new magnitude.
func (c UpdatePriceModifierCommand) Value() decimal.Decimal {
	return c.value
}

// Priority returns the new application order.
func (c UpdatePriceModifierCommand) Priority() int {
	return c.priority
}

// Options returns the new applicability settings.
func (c UpdatePriceModifierCommand) Options() pricing.ModifierOptions {
	return c.options
}
