package commands

import (
	"context"
	"time"
)

// UnlockExpiredOrdersCommandHandler releases advisory locks that outlived
// the inactivity timeout. The expiry predicate lives on the lock itself;
// this handler is the external actor that polls and acts on it.
type UnlockExpiredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUnlockExpiredOrdersCommandHandler creates a handler for expired lock cleanup.
func NewUnlockExpiredOrdersCommandHandler(uowFactory OrderUoWFactory) UnlockExpiredOrdersCommandHandler {
	return UnlockExpiredOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fetches orders locked before the expiry cutoff and force-releases
// each lock, regardless of owner. All releases commit atomically.
func (h *UnlockExpiredOrdersCommandHandler) Handle(ctx context.Context, cmd UnlockExpiredOrdersCommand) error {
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

	now := time.Now()
	lockedOrders, err := orderRepo.GetLockedBefore(ctx, now.Add(-cmd.Timeout()))
	if err != nil {
		return err
	}

	for _, aggregate := range lockedOrders {
		if !aggregate.ForceReleaseExpiredLock(now, cmd.Timeout()) {
			continue
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
