package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrRemoveItemFromSectionCommandIsNotConstructed = errors.New(
	"RemoveItemFromSectionCommand must be created via NewRemoveItemFromSectionCommand constructor",
)

// RemoveItemFromSectionCommand represents a request to detach an item from
// an order section.
type RemoveItemFromSectionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	sectionNumber int
	itemID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveItemFromSectionCommand creates a command to remove an item from a section.
func NewRemoveItemFromSectionCommand(
	orderID kernel.UUID,
	sectionNumber int,
	itemID kernel.UUID,
) (RemoveItemFromSectionCommand, error) {
	cmd := RemoveItemFromSectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		itemID.Validate(),
	); err != nil {
		return RemoveItemFromSectionCommand{}, err
	}
	if sectionNumber <= 0 {
		return RemoveItemFromSectionCommand{}, errs.NewValueIsInvalidError("sectionNumber")
	}

	cmd.orderID = orderID
	cmd.sectionNumber = sectionNumber
	cmd.itemID = itemID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveItemFromSectionCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemFromSectionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c RemoveItemFromSectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SectionNumber returns the number of the section holding the item.
func (c RemoveItemFromSectionCommand) SectionNumber() int {
	return c.sectionNumber
}

// ItemID returns the identifier of the item to remove.
func (c RemoveItemFromSectionCommand) ItemID() kernel.UUID {
	return c.itemID
}
