package ports

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
)

// StockLedger defines the persistence contract for the append-only record
// of stock movements.
type StockLedger interface {
	// Append persists the given movements. Appends are idempotent: a
	// movement whose idempotency key is already recorded is silently
	// skipped and never written twice.
	Append(ctx context.Context, movements []inventory.Movement) error

	// GetByOrder retrieves all movements related to one order,
	// ordered by occurrence time ascending.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]inventory.Movement, error)

	// GetByTask retrieves all movements related to one picking or
	// receiving task, ordered by occurrence time ascending.
	GetByTask(ctx context.Context, taskID kernel.UUID) ([]inventory.Movement, error)

	// GetBySKU retrieves the full movement history of one SKU in one
	// warehouse, ordered by occurrence time ascending. Replaying it yields
	// the authoritative stock level.
	GetBySKU(ctx context.Context, warehouseID kernel.UUID, sku string) ([]inventory.Movement, error)
}
