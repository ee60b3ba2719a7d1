package ports

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
)

// MovementPublisher notifies external consumers about committed stock
// movements. Publishing happens after the owning transaction commits and is
// best-effort: a failed publish must never roll the movement back.
type MovementPublisher interface {
	// Publish emits the given movements to the message bus.
	Publish(ctx context.Context, movements []inventory.Movement) error
}
