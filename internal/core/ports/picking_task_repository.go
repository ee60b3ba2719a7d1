package ports

import (
	"context"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
)

// PickingTaskRepository defines the persistence contract for picking tasks.
// Updates use optimistic concurrency and return picking.ErrVersionConflict
// on concurrent modification.
type PickingTaskRepository interface {
	// Add persists a new picking task.
	Add(ctx context.Context, aggregate *picking.Task) error

	// Update persists changes to an existing task, bumping its version.
	Update(ctx context.Context, aggregate *picking.Task) error

	// Get retrieves a picking task by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*picking.Task, error)

	// GetByOrder retrieves all picking tasks created for one order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Task, error)

	// GetAllInStatus retrieves all tasks in the given status,
	// ordered by creation ascending.
	GetAllInStatus(ctx context.Context, status picking.Status) ([]*picking.Task, error)
}
