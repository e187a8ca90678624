package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrUnlockOrderCommandIsNotConstructed = errors.New(
	"UnlockOrderCommand must be created via NewUnlockOrderCommand constructor",
)

// UnlockOrderCommand represents a request to release the advisory edit lock
// on an order.
type UnlockOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  int64

	guard guard.ConstructorGuard
}

// NewUnlockOrderCommand creates a command to release an order's edit lock.
func NewUnlockOrderCommand(orderID kernel.UUID, userID int64) (UnlockOrderCommand, error) {
	cmd := UnlockOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return UnlockOrderCommand{}, err
	}
	if userID <= 0 {
		return UnlockOrderCommand{}, errs.NewValueIsInvalidError("userId")
	}

	cmd.orderID = orderID
	cmd.userID = userID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnlockOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnlockOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to unlock.
func (c UnlockOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the user releasing the lock.
func (c UnlockOrderCommand) UserID() int64 {
	return c.userID
}
