package ports

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for inventory items.
// Updates use optimistic concurrency: implementations compare the version
// the aggregate was loaded with and return inventory.ErrVersionConflict
// when another writer got there first.
type InventoryRepository interface {
	// Add persists a new inventory item.
	// The item must be valid and not already exist for its (warehouse, sku) pair.
	Add(ctx context.Context, aggregate *inventory.Item) error

	// Update persists changes to an existing item, bumping its version.
	// Returns inventory.ErrVersionConflict when the stored version differs
	// from the one the aggregate was loaded with.
	Update(ctx context.Context, aggregate *inventory.Item) error

	// Get retrieves the item tracking one SKU in one warehouse.
	Get(ctx context.Context, warehouseID kernel.UUID, sku string) (*inventory.Item, error)

	// GetBySKUs retrieves the items for the given SKUs in one warehouse,
	// ordered by SKU ascending. Returns errs.ObjectNotFoundError when any
	// of the requested SKUs is untracked.
	GetBySKUs(ctx context.Context, warehouseID kernel.UUID, skus []string) ([]*inventory.Item, error)

	// GetBelowReorderPoint retrieves all items whose available quantity has
	// fallen to or below their reorder point. Used by replenishment checks.
	GetBelowReorderPoint(ctx context.Context) ([]*inventory.Item, error)

	// GetAll retrieves every tracked item across all warehouses,
	// ordered by warehouse then SKU. Used by projection audits.
	GetAll(ctx context.Context) ([]*inventory.Item, error)
}
