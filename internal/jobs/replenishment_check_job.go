package jobs

import (
	"context"
	"log/slog"

	"warehousing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReplenishmentCheckJob manages the scheduled reorder-point scan.
// Runs every minute to raise receiving tasks for SKUs that have fallen
// to or below their reorder point.
type ReplenishmentCheckJob struct {
	handler commands.CheckReplenishmentCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReplenishmentCheckJob creates a new job for replenishment scans.
// Uses CheckReplenishmentCommandHandler to raise receiving tasks every minute.
func NewReplenishmentCheckJob(handler commands.CheckReplenishmentCommandHandler, logger *slog.Logger) *ReplenishmentCheckJob {
	return &ReplenishmentCheckJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "replenishment_check_job"),
	}
}

// Start begins the replenishment check job to run every minute.
func (j *ReplenishmentCheckJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCheckReplenishmentCommand()

		created, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Replenishment check job failed", "error", err)
			return
		}

		if created > 0 {
			j.logger.InfoContext(ctx, "Replenishment check raised receiving tasks", "created", created)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Replenishment check job started (running every minute)")
	return nil
}

// Stop stops the replenishment check job.
func (j *ReplenishmentCheckJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Replenishment check job stopped")
}
