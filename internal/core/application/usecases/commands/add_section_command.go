package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrAddSectionCommandIsNotConstructed = errors.New(
	"AddSectionCommand must be created via NewAddSectionCommand constructor",
)

// AddSectionCommand represents a request to attach a new section to an order.
type AddSectionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	sectionNumber int
	name          string
	headerID      *kernel.UUID
	description   *string

	guard guard.ConstructorGuard
}

// NewAddSectionCommand creates a command to add a section to an order.
// Validates the order ID, a positive section number and a non-blank name.
func NewAddSectionCommand(
	orderID kernel.UUID,
	sectionNumber int,
	name string,
	headerID *kernel.UUID,
	description *string,
) (AddSectionCommand, error) {
	cmd := AddSectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSection(sectionNumber, name),
	); err != nil {
		return AddSectionCommand{}, err
	}

	cmd.headerID = headerID
	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddSectionCommand) Validate() error {
	return c.guard.Validate(ErrAddSectionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c AddSectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SectionNumber returns the number of the new section.
func (c AddSectionCommand) SectionNumber() int {
	return c.sectionNumber
}

// Name returns the section's display name.
func (c AddSectionCommand) Name() string {
	return c.name
}

// HeaderID returns the optional header reference.
func (c AddSectionCommand) HeaderID() *kernel.UUID {
	return c.headerID
}

// Description returns the optional section description.
func (c AddSectionCommand) Description() *string {
	return c.description
}

func (c *AddSectionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddSectionCommand) setSection(sectionNumber int, name string) error {
	if sectionNumber <= 0 {
		return errs.NewValueIsInvalidError("sectionNumber")
	}
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.sectionNumber = sectionNumber
	c.name = name
	return nil
}
