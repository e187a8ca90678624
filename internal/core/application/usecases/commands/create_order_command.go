package commands

import (
	"errors"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new order in draft
// status. The order number is generated by the handler; the caller supplies
// the client and optional deadline and notes.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, 42, "Acme Interiors", nil, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clientID   int64
	clientName string
	deadline   *time.Time
	notes      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the client ID is positive and the
// client name is not blank. Deeper rules (deadline in the future, trimming)
// are enforced by the aggregate itself.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID int64,
	clientName string,
	deadline *time.Time,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClient(clientID, clientName),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.deadline = deadline
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the ordering client's identifier.
func (c CreateOrderCommand) ClientID() int64 {
	return c.clientID
}

// ClientName returns the ordering client's display name.
func (c CreateOrderCommand) ClientName() string {
	return c.clientName
}

// Deadline returns the requested completion date, or nil.
func (c CreateOrderCommand) Deadline() *time.Time {
	return c.deadline
}

// Notes returns the free-form order notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClient(clientID int64, clientName string) error {
	if clientID <= 0 {
		return errs.NewValueIsInvalidError("clientId")
	}
	if strings.TrimSpace(clientName) == "" {
		return errs.NewValueIsRequiredError("clientName")
	}

	c.clientID = clientID
	c.clientName = clientName
	return nil
}
