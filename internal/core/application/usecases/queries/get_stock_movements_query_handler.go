package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
)

// GetStockMovementsQueryHandler reads the movement ledger for audit views.
type GetStockMovementsQueryHandler struct {
	db *gorm.DB
}

// NewGetStockMovementsQueryHandler creates a handler for movement history queries.
func NewGetStockMovementsQueryHandler(db *gorm.DB) GetStockMovementsQueryHandler {
	return GetStockMovementsQueryHandler{db: db}
}

// Handle executes the query for one SKU's recent movements, newest first.
func (h GetStockMovementsQueryHandler) Handle(
	ctx context.Context,
	query GetStockMovementsQuery,
) ([]GetStockMovementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	movements := make([]GetStockMovementsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			quantity_delta,
			related_order_id,
			related_task_id,
			reason,
			performed_by,
			occurred_at
		FROM stock_movements
		WHERE warehouse_id = ? AND sku = ?
		ORDER BY occurred_at DESC
		LIMIT ?
	`, query.WarehouseID().Bytes(), query.SKU(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var movement GetStockMovementsQueryResponse
		var id uuid.UUID
		var kind int
		var orderID, taskID *uuid.UUID

		err = rows.Scan(
			&id,
			&kind,
			&movement.QuantityDelta,
			&orderID,
			&taskID,
			&movement.Reason,
			&movement.PerformedBy,
			&movement.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		movementID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		movement.ID = movementID
		movement.Kind = inventory.MovementKind(kind).String()

		if movement.RelatedOrderID, err = optionalUUID(orderID); err != nil {
			return nil, err
		}
		if movement.RelatedTaskID, err = optionalUUID(taskID); err != nil {
			return nil, err
		}

		movements = append(movements, movement)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movements, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
