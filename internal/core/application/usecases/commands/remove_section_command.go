package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrRemoveSectionCommandIsNotConstructed = errors.New(
	"RemoveSectionCommand must be created via NewRemoveSectionCommand constructor",
)

// RemoveSectionCommand represents a request to detach a section, with all
// its items, from an order.
type RemoveSectionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	sectionNumber int

	guard guard.ConstructorGuard
}

// NewRemoveSectionCommand creates a command to remove a section from an order.
func NewRemoveSectionCommand(orderID kernel.UUID, sectionNumber int) (RemoveSectionCommand, error) {
	cmd := RemoveSectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RemoveSectionCommand{}, err
	}
	if sectionNumber <= 0 {
		return RemoveSectionCommand{}, errs.NewValueIsInvalidError("sectionNumber")
	}

	cmd.sectionNumber = sectionNumber
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveSectionCommand) Validate() error {
	return c.guard.Validate(ErrRemoveSectionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c RemoveSectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SectionNumber returns the number of the section to remove.
func (c RemoveSectionCommand) SectionNumber() int {
	return c.sectionNumber
}

func (c *RemoveSectionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
