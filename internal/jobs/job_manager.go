package jobs

import (
	"fmt"
	"log/slog"

	"warehousing/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	replenishmentCheckJob *ReplenishmentCheckJob
	projectionAuditJob    *ProjectionAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	checkReplenishmentHandler commands.CheckReplenishmentCommandHandler,
	auditProjectionHandler commands.AuditStockProjectionCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		replenishmentCheckJob: NewReplenishmentCheckJob(checkReplenishmentHandler, logger),
		projectionAuditJob:    NewProjectionAuditJob(auditProjectionHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.replenishmentCheckJob.Start(); err != nil {
		return fmt.Errorf("failed to start replenishment check job: %w", err)
	}

	if err := jm.projectionAuditJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.replenishmentCheckJob.Stop()
		return fmt.Errorf("failed to start projection audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.projectionAuditJob.Stop()
	jm.replenishmentCheckJob.Stop()
}
