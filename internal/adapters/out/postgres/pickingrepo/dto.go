// Package pickingrepo provides data transfer objects and mapping functions for
// picking task persistence. This package implements the repository pattern for
// the picking task aggregate, handling the conversion between domain entities
// and database representations.
package pickingrepo

import (
	"time"

	"github.com/google/uuid"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
)

// TaskDTO represents the database structure for persisting picking tasks.
// Estimated handling is stored as nanoseconds.
type TaskDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID       uuid.UUID `gorm:"type:uuid;not null"`
	Status            int       `gorm:"type:smallint;not null;index"`
	Assignee          string    `gorm:"type:varchar(255);not null"`
	EstimatedHandling int64     `gorm:"type:bigint;not null"`
	Version           int64     `gorm:"type:bigint;not null"`
	Lines             []LineDTO `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for picking tasks.
func (TaskDTO) TableName() string {
	return "picking_tasks"
}

// LineDTO represents a single order line within a picking task.
// Links to the task via foreign key; one row per (task, sku).
type LineDTO struct {
	TaskID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU               string    `gorm:"type:varchar(64);primaryKey"`
	Slot              SlotDTO   `gorm:"embedded;embeddedPrefix:slot_"`
	QuantityRequested int       `gorm:"type:int;not null"`
	QuantityPicked    int       `gorm:"type:int;not null"`
	Status            int       `gorm:"type:smallint;not null"`
}

// TableName specifies the database table name for picking task lines.
func (LineDTO) TableName() string {
	return "picking_task_lines"
}

// SlotDTO represents the embedded storage slot the line is picked from.
type SlotDTO struct {
	Aisle string `gorm:"type:varchar(16);not null"`
	Rack  string `gorm:"type:varchar(16);not null"`
	Shelf string `gorm:"type:varchar(16);not null"`
	Bin   string `gorm:"type:varchar(16);not null"`
}

// fromDomain converts a picking task aggregate to its database representation.
func fromDomain(task *picking.Task) TaskDTO {
	taskID := task.ID().Bytes()
	lines := make([]LineDTO, 0, len(task.Lines()))

	for _, line := range task.Lines() {
		slot := line.Slot()
		lines = append(lines, LineDTO{
			TaskID: taskID,
			SKU:    line.SKU(),
			Slot: SlotDTO{
				Aisle: slot.Aisle(),
				Rack:  slot.Rack(),
				Shelf: slot.Shelf(),
				Bin:   slot.Bin(),
			},
			QuantityRequested: line.QuantityRequested(),
			QuantityPicked:    line.QuantityPicked(),
			Status:            int(line.Status()),
		})
	}

	return TaskDTO{
		ID:                taskID,
		OrderID:           task.OrderID().Bytes(),
		WarehouseID:       task.WarehouseID().Bytes(),
		Status:            int(task.Status()),
		Assignee:          task.Assignee(),
		EstimatedHandling: int64(task.EstimatedHandling()),
		Version:           task.Version(),
		Lines:             lines,
	}
}

// toDomain converts a database DTO to a picking task aggregate.
func toDomain(dto TaskDTO) (*picking.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]picking.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return picking.RestoreTask(id, orderID, warehouseID,
		picking.Status(dto.Status), dto.Assignee, lines,
		time.Duration(dto.EstimatedHandling), dto.Version)
}

// lineToDomain converts a line DTO to a domain line.
func lineToDomain(dto LineDTO) (picking.Line, error) {
	slot, err := kernel.NewLocation(dto.Slot.Aisle, dto.Slot.Rack, dto.Slot.Shelf, dto.Slot.Bin)
	if err != nil {
		return picking.Line{}, err
	}

	return picking.RestoreLine(dto.SKU, slot, dto.QuantityRequested,
		dto.QuantityPicked, picking.LineStatus(dto.Status))
}
