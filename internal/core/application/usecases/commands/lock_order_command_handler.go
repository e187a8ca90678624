package commands

import (
	"context"
)

// LockOrderCommandHandler acquires or refreshes the advisory lock on an order.
type LockOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewLockOrderCommandHandler creates a handler for order locking.
func NewLockOrderCommandHandler(uowFactory OrderUoWFactory) LockOrderCommandHandler {
	return LockOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order and acquires the lock through the aggregate. A
// repeated acquire by the current holder refreshes the timestamp; an
// acquire by a different user fails.
func (h *LockOrderCommandHandler) Handle(ctx context.Context, cmd LockOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AcquireLock(cmd.UserID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
