// Package jobs provides scheduled background tasks for the warehousing system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the warehouse service.
//
// # Available Jobs
//
// 1. ReplenishmentCheckJob - Runs every minute to raise receiving tasks for SKUs at or below their reorder point
// 2. ProjectionAuditJob - Runs every ten minutes to compare cached stock levels against a replay of the stock ledger
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(checkReplenishmentHandler, auditProjectionHandler, logger)
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
// The replenishment check uses the cron expression "0 * * * * *" (every minute);
// the projection audit uses "0 */10 * * * *" (every ten minutes). Both scans are
// idempotent, so overlapping or missed runs cause no harm.
//
// # Error Handling
//
// - Replenishment check logs failures and retries on the next tick
// - Projection audit logs every divergence as an error; reconciling is manual
// - Failed job starts will stop any already running jobs
package jobs
