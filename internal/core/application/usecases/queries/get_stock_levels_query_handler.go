package queries

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GetStockLevelsQueryHandler reads stock levels from the projection table.
type GetStockLevelsQueryHandler struct {
	db *gorm.DB
}

// NewGetStockLevelsQueryHandler creates a handler for stock level queries.
// Requires a GORM database connection for query execution.
func NewGetStockLevelsQueryHandler(db *gorm.DB) GetStockLevelsQueryHandler {
	return GetStockLevelsQueryHandler{db: db}
}

// Handle executes the query for every SKU tracked in the warehouse.
// Results are sorted by SKU for consistent output.
func (h GetStockLevelsQueryHandler) Handle(
	ctx context.Context,
	query GetStockLevelsQuery,
) ([]GetStockLevelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	levels := make([]GetStockLevelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sku,
			on_hand,
			reserved,
			slot_aisle,
			slot_rack,
			slot_shelf,
			slot_bin,
			reorder_point
		FROM inventory_items
		WHERE warehouse_id = ?
		ORDER BY sku
	`, query.WarehouseID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var level GetStockLevelsQueryResponse
		var aisle, rack, shelf, bin string

		err = rows.Scan(
			&level.SKU,
			&level.OnHand,
			&level.Reserved,
			&aisle,
			&rack,
			&shelf,
			&bin,
			&level.ReorderPoint,
		)
		if err != nil {
			return nil, err
		}

		level.Available = level.OnHand - level.Reserved
		level.Slot = fmt.Sprintf("%s-%s-%s-%s", aisle, rack, shelf, bin)
		levels = append(levels, level)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return levels, nil
}
