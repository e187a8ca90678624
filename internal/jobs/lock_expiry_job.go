package jobs

import (
	"context"
	"log/slog"
	"time"

	"workshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LockExpiryJob releases advisory edit locks whose holders went silent.
// Runs every minute so an abandoned editing session never blocks an order
// for much longer than the lock timeout.
type LockExpiryJob struct {
	handler commands.UnlockExpiredOrdersCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLockExpiryJob creates a new job for releasing expired order locks.
// Uses UnlockExpiredOrdersCommandHandler with the given inactivity timeout.
func NewLockExpiryJob(
	handler commands.UnlockExpiredOrdersCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *LockExpiryJob {
	return &LockExpiryJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(),
		logger:  logger.With("component", "lock_expiry_job"),
	}
}

// Start begins the lock expiry job to run every minute.
func (j *LockExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewUnlockExpiredOrdersCommand(j.timeout)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Lock expiry job misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Lock expiry job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lock expiry job started (running every minute)",
		"timeout", j.timeout)
	return nil
}

// Stop stops the lock expiry job.
func (j *LockExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Lock expiry job stopped")
}
