package jobs

import (
	"context"
	"log/slog"

	"warehousing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ProjectionAuditJob manages the scheduled audit of the inventory projection.
// Runs every ten minutes to compare cached stock levels against a replay of
// the stock ledger.
type ProjectionAuditJob struct {
	handler commands.AuditStockProjectionCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewProjectionAuditJob creates a new job for projection audits.
// Uses AuditStockProjectionCommandHandler to detect projection drift.
func NewProjectionAuditJob(handler commands.AuditStockProjectionCommandHandler, logger *slog.Logger) *ProjectionAuditJob {
	return &ProjectionAuditJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "projection_audit_job"),
	}
}

// Start begins the projection audit job to run every ten minutes.
func (j *ProjectionAuditJob) Start() error {
	_, err := j.cron.AddFunc("0 */10 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAuditStockProjectionCommand()

		divergences, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Projection audit job failed", "error", err)
			return
		}

		for _, d := range divergences {
			j.logger.ErrorContext(ctx, "Stock projection diverges from ledger",
				"warehouse_id", d.WarehouseID.String(),
				"sku", d.SKU,
				"projected_on_hand", d.ProjectedOnHand,
				"replayed_on_hand", d.ReplayedOnHand,
				"projected_reserved", d.ProjectedReserved,
				"replayed_reserved", d.ReplayedReserved,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Projection audit job started (running every ten minutes)")
	return nil
}

// Stop stops the projection audit job.
func (j *ProjectionAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Projection audit job stopped")
}
