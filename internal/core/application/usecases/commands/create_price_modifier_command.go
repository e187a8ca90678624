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

var ErrCreatePriceModifierCommandIsNotConstructed = errors.New(
	"CreatePriceModifierCommand must be created via NewCreatePriceModifierCommand constructor",
)

// CreatePriceModifierCommand represents a request to register a new price
// modifier. The modifier code must be unique; the handler enforces that
// against the repository.
//
// Example:
//
//	cmd, err := NewCreatePriceModifierCommand(kernel.NewUUID(), "VAT",
//	    "Value added tax", pricing.Percentage, decimal.NewFromInt(20), 10,
//	    pricing.ModifierOptions{})
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCreatePriceModifierCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
type CreatePriceModifierCommand struct { //nolint:recvcheck //using for validation
	modifierID   kernel.UUID
	code         string
	name         string
	modifierType pricing.ModifierType
	value        decimal.Decimal
	priority     int
	options      pricing.ModifierOptions

	guard guard.ConstructorGuard
}

// NewCreatePriceModifierCommand creates a command to register a price modifier.
// Validates identifiers, the modifier type and the type-specific value bounds;
// the remaining rules live in the aggregate factory.
func NewCreatePriceModifierCommand(
	modifierID kernel.UUID,
	code string,
	name string,
	modifierType pricing.ModifierType,
	value decimal.Decimal,
	priority int,
	options pricing.ModifierOptions,
) (CreatePriceModifierCommand, error) {
	cmd := CreatePriceModifierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		modifierID.Validate(),
		modifierType.Validate(),
		modifierType.ValidateValue(value),
	); err != nil {
		return CreatePriceModifierCommand{}, err
	}
	if strings.TrimSpace(code) == "" {
		return CreatePriceModifierCommand{}, errs.NewValueIsRequiredError("code")
	}
	if strings.TrimSpace(name) == "" {
		return CreatePriceModifierCommand{}, errs.NewValueIsRequiredError("name")
	}

	cmd.modifierID = modifierID
	cmd.code = code
	cmd.name = name
	cmd.modifierType = modifierType
	cmd.value = value
	cmd.priority = priority
	cmd.options = options
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePriceModifierCommand) Validate() error {
	return c.guard.Validate(ErrCreatePriceModifierCommandIsNotConstructed)
}

// ModifierID returns the unique identifier for the new modifier.
func (c CreatePriceModifierCommand) ModifierID() kernel.UUID {
	return c.modifierID
}

// Code returns the modifier's unique business code.
func (c CreatePriceModifierCommand) Code() string {
	return c.code
}

// Name returns the modifier's display name.
func (c CreatePriceModifierCommand) Name() string {
	return c.name
}

// ModifierType returns how the modifier applies to a price.
func (c CreatePriceModifierCommand) ModifierType() pricing.ModifierType {
	return c.modifierType
}

// Value returns the modifier's magnitude.
func (c CreatePriceModifierCommand) Value() decimal.Decimal {
	return c.value
}

// Priority returns the modifier's application order.
func (c CreatePriceModifierCommand) Priority() int {
	return c.priority
}

// Options returns the optional applicability settings.
func (c CreatePriceModifierCommand) Options() pricing.ModifierOptions {
	return c.options
}
