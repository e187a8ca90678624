package commands

import (
	"context"
)

// UnlockOrderCommandHandler releases the advisory lock on an order.
type UnlockOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUnlockOrderCommandHandler creates a handler for order unlocking.
func NewUnlockOrderCommandHandler(uowFactory OrderUoWFactory) UnlockOrderCommandHandler {
	return UnlockOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order and releases the lock through the aggregate.
// Releasing an already-unlocked order is a no-op; a release by a non-holder
// fails.
func (h *UnlockOrderCommandHandler) Handle(ctx context.Context, cmd UnlockOrderCommand) error {
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

	if err = aggregate.ReleaseLock(cmd.UserID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
