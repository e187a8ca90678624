// Package jobs provides scheduled background tasks for the order management system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order workflow.
//
// # Available Jobs
//
// 1. LockExpiryJob - Runs every minute to release advisory edit locks whose
// holders have been inactive longer than the configured timeout
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(unlockExpiredOrdersHandler, order.DefaultLockTimeout, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The lock expiry job uses the cron expression "* * * * *", running once a
// minute. Locks are advisory, so a release delayed by up to a minute past
// the timeout is acceptable.
//
// # Error Handling
//
// - Expiry job logs all errors; a failing run is retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
