// Package ledgerrepo provides data transfer objects and mapping functions for
// the append-only stock movement ledger. Rows are never updated or deleted;
// the table is the authoritative history every stock level derives from.
package ledgerrepo

import (
	"time"

	"github.com/google/uuid"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
)

// MovementDTO represents the database structure for persisting stock movements.
// The idempotency key carries a unique index so the same business action can
// never append twice.
type MovementDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SKU            string     `gorm:"type:varchar(64);not null;index:idx_movements_sku,priority:2"`
	WarehouseID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_movements_sku,priority:1"`
	Kind           int        `gorm:"type:smallint;not null"`
	QuantityDelta  int        `gorm:"type:int;not null"`
	RelatedOrderID *uuid.UUID `gorm:"type:uuid;index"`
	RelatedTaskID  *uuid.UUID `gorm:"type:uuid;index"`
	Reason         string     `gorm:"type:varchar(255);not null"`
	PerformedBy    string     `gorm:"type:varchar(255);not null"`
	OccurredAt     time.Time  `gorm:"type:timestamptz;not null"`
	IdempotencyKey string     `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName specifies the database table name for stock movements.
func (MovementDTO) TableName() string {
	return "stock_movements"
}

// fromDomain converts a movement to its database representation.
func fromDomain(movement inventory.Movement) MovementDTO {
	var orderID *uuid.UUID
	if movement.RelatedOrderID() != nil {
		raw := movement.RelatedOrderID().Bytes()
		orderID = &raw
	}

	var taskID *uuid.UUID
	if movement.RelatedTaskID() != nil {
		raw := movement.RelatedTaskID().Bytes()
		taskID = &raw
	}

	return MovementDTO{
		ID:             movement.ID().Bytes(),
		SKU:            movement.SKU(),
		WarehouseID:    movement.WarehouseID().Bytes(),
		Kind:           int(movement.Kind()),
		QuantityDelta:  movement.QuantityDelta(),
		RelatedOrderID: orderID,
		RelatedTaskID:  taskID,
		Reason:         movement.Reason(),
		PerformedBy:    movement.PerformedBy(),
		OccurredAt:     movement.OccurredAt(),
		IdempotencyKey: movement.IdempotencyKey(),
	}
}

// toDomain converts a database DTO to a movement.
func toDomain(dto MovementDTO) (inventory.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return inventory.Movement{}, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return inventory.Movement{}, err
	}

	var orderID *kernel.UUID
	if dto.RelatedOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.RelatedOrderID)[:])
		if orderErr != nil {
			return inventory.Movement{}, orderErr
		}
		orderID = &oID
	}

	var taskID *kernel.UUID
	if dto.RelatedTaskID != nil {
		tID, taskErr := kernel.UUIDFromBytes((*dto.RelatedTaskID)[:])
		if taskErr != nil {
			return inventory.Movement{}, taskErr
		}
		taskID = &tID
	}

	return inventory.RestoreMovement(id, dto.SKU, warehouseID,
		inventory.MovementKind(dto.Kind), dto.QuantityDelta,
		orderID, taskID, dto.Reason, dto.PerformedBy, dto.OccurredAt)
}
