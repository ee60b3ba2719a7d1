// Package inventoryrepo provides data transfer objects and mapping functions for
// inventory item persistence. This package implements the repository pattern for
// the inventory aggregate, handling the conversion between domain entities and
// database representations.
package inventoryrepo

import (
	"github.com/google/uuid"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
)

// ItemDTO represents the database structure for persisting inventory items.
// One row per (warehouse, sku) pair. Available quantity has no column; it is
// always computed from on_hand and reserved.
type ItemDTO struct {
	SKU             string    `gorm:"type:varchar(64);primaryKey"`
	WarehouseID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	OnHand          int       `gorm:"type:int;not null"`
	Reserved        int       `gorm:"type:int;not null"`
	Slot            SlotDTO   `gorm:"embedded;embeddedPrefix:slot_"`
	ReorderPoint    int       `gorm:"type:int;not null"`
	ReorderQuantity int       `gorm:"type:int;not null"`
	MinStock        int       `gorm:"type:int;not null"`
	MaxStock        int       `gorm:"type:int;not null"`
	Version         int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for inventory items.
func (ItemDTO) TableName() string {
	return "inventory_items"
}

// SlotDTO represents the embedded storage slot coordinates within the
// inventory item table.
type SlotDTO struct {
	Aisle string `gorm:"type:varchar(16);not null"`
	Rack  string `gorm:"type:varchar(16);not null"`
	Shelf string `gorm:"type:varchar(16);not null"`
	Bin   string `gorm:"type:varchar(16);not null"`
}

// fromDomain converts an inventory item aggregate to its database representation.
func fromDomain(item *inventory.Item) ItemDTO {
	policy := item.Policy()
	slot := item.Location()

	return ItemDTO{
		SKU:         item.SKU(),
		WarehouseID: item.WarehouseID().Bytes(),
		OnHand:      item.OnHand(),
		Reserved:    item.Reserved(),
		Slot: SlotDTO{
			Aisle: slot.Aisle(),
			Rack:  slot.Rack(),
			Shelf: slot.Shelf(),
			Bin:   slot.Bin(),
		},
		ReorderPoint:    policy.ReorderPoint,
		ReorderQuantity: policy.ReorderQuantity,
		MinStock:        policy.MinStock,
		MaxStock:        policy.MaxStock,
		Version:         item.Version(),
	}
}

// toDomain converts a database DTO to an inventory item aggregate.
func toDomain(dto ItemDTO) (*inventory.Item, error) {
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	slot, err := kernel.NewLocation(dto.Slot.Aisle, dto.Slot.Rack, dto.Slot.Shelf, dto.Slot.Bin)
	if err != nil {
		return nil, err
	}

	policy := inventory.ReorderPolicy{
		ReorderPoint:    dto.ReorderPoint,
		ReorderQuantity: dto.ReorderQuantity,
		MinStock:        dto.MinStock,
		MaxStock:        dto.MaxStock,
	}

	return inventory.RestoreItem(dto.SKU, warehouseID, dto.OnHand, dto.Reserved,
		slot, policy, dto.Version)
}
