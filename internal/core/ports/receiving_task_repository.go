package ports

import (
	"context"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
)

// ReceivingTaskRepository defines the persistence contract for receiving tasks.
type ReceivingTaskRepository interface {
	// Add persists a new receiving task.
	Add(ctx context.Context, aggregate *receiving.Task) error

	// Update persists changes to an existing task, bumping its version.
	Update(ctx context.Context, aggregate *receiving.Task) error

	// Get retrieves a receiving task by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*receiving.Task, error)

	// GetAllOpen retrieves all tasks that have not reached a terminal
	// status yet. Used by replenishment checks to avoid announcing the
	// same SKU twice.
	GetAllOpen(ctx context.Context) ([]*receiving.Task, error)
}
