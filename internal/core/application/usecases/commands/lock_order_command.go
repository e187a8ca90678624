package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrLockOrderCommandIsNotConstructed = errors.New(
	"LockOrderCommand must be created via NewLockOrderCommand constructor",
)

// LockOrderCommand represents a request to acquire or refresh the advisory
// edit lock on an order for a user.
type LockOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  int64

	guard guard.ConstructorGuard
}

// NewLockOrderCommand creates a command to lock an order for editing.
func NewLockOrderCommand(orderID kernel.UUID, userID int64) (LockOrderCommand, error) {
	cmd := LockOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return LockOrderCommand{}, err
	}
	if userID <= 0 {
		return LockOrderCommand{}, errs.NewValueIsInvalidError("userId")
	}

	cmd.orderID = orderID
	cmd.userID = userID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LockOrderCommand) Validate() error {
	return c.guard.Validate(ErrLockOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to lock.
func (c LockOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the user acquiring the lock.
func (c LockOrderCommand) UserID() int64 {
	return c.userID
}
