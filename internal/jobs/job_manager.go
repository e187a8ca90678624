package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"workshop/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	lockExpiryJob *LockExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	unlockExpiredOrdersHandler commands.UnlockExpiredOrdersCommandHandler,
	lockTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		lockExpiryJob: NewLockExpiryJob(unlockExpiredOrdersHandler, lockTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lockExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start lock expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.lockExpiryJob.Stop()
}
