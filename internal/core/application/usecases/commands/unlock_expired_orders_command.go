package commands

import (
	"errors"
	"time"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrUnlockExpiredOrdersCommandIsNotConstructed = errors.New(
	"UnlockExpiredOrdersCommand must be created via NewUnlockExpiredOrdersCommand constructor",
)

// UnlockExpiredOrdersCommand represents a request to release advisory locks
// that have been inactive longer than the timeout. Issued periodically by
// the background lock expiry job; nothing in the aggregate releases expired
// locks on its own.
type UnlockExpiredOrdersCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

// NewUnlockExpiredOrdersCommand creates a command to release expired locks.
// The timeout must be positive; order.DefaultLockTimeout is the usual value.
func NewUnlockExpiredOrdersCommand(timeout time.Duration) (UnlockExpiredOrdersCommand, error) {
	cmd := UnlockExpiredOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if timeout <= 0 {
		return UnlockExpiredOrdersCommand{}, errs.NewValueIsInvalidError("timeout")
	}

	cmd.timeout = timeout
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnlockExpiredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrUnlockExpiredOrdersCommandIsNotConstructed)
}

// Timeout returns the inactivity duration after which a lock is expired.
func (c UnlockExpiredOrdersCommand) Timeout() time.Duration {
	return c.timeout
}
