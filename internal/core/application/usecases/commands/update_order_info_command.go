package commands

import (
	"errors"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrUpdateOrderInfoCommandIsNotConstructed = errors.New(
	"UpdateOrderInfoCommand must be created via NewUpdateOrderInfoCommand constructor",
)

// UpdateOrderInfoCommand represents a request to replace an order's client
// name, deadline and notes.
type UpdateOrderInfoCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clientName string
	deadline   *time.Time
	notes      string

	guard guard.ConstructorGuard
}

// NewUpdateOrderInfoCommand creates a command to update an order's details.
// The deadline may lie in the past here: the creation-only future rule does
// not apply to updates.
func NewUpdateOrderInfoCommand(
	orderID kernel.UUID,
	clientName string,
	deadline *time.Time,
	notes string,
) (UpdateOrderInfoCommand, error) {
	cmd := UpdateOrderInfoCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return UpdateOrderInfoCommand{}, err
	}
	if strings.TrimSpace(clientName) == "" {
		return UpdateOrderInfoCommand{}, errs.NewValueIsRequiredError("clientName")
	}

	cmd.orderID = orderID
	cmd.clientName = clientName
	cmd.deadline = deadline
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderInfoCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderInfoCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c UpdateOrderInfoCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientName returns the new client display name.
func (c UpdateOrderInfoCommand) ClientName() string {
	return c.clientName
}

// Deadline returns the new deadline, or nil to clear it.
func (c UpdateOrderInfoCommand) Deadline() *time.Time {
	return c.deadline
}

// Notes returns the new free-form notes.
func (c UpdateOrderInfoCommand) Notes() string {
	return c.notes
}
