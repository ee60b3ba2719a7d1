// Package receivingrepo provides data transfer objects and mapping functions
// for receiving task persistence. This package implements the repository
// pattern for the receiving task aggregate, handling the conversion between
// domain entities and database representations.
package receivingrepo

import (
	"github.com/google/uuid"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
)

// TaskDTO represents the database structure for persisting receiving tasks.
type TaskDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	WarehouseID   uuid.UUID         `gorm:"type:uuid;not null"`
	Supplier      string            `gorm:"type:varchar(255);not null"`
	Status        int               `gorm:"type:smallint;not null;index"`
	Version       int64             `gorm:"type:bigint;not null"`
	Expected      []ExpectedLineDTO `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Actuals       []ActualLineDTO   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Discrepancies []DiscrepancyDTO  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for receiving tasks.
func (TaskDTO) TableName() string {
	return "receiving_tasks"
}

// ExpectedLineDTO represents an announced SKU quantity; one row per (task, sku).
type ExpectedLineDTO struct {
	TaskID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU      string    `gorm:"type:varchar(64);primaryKey"`
	Quantity int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for expected lines.
func (ExpectedLineDTO) TableName() string {
	return "receiving_expected_lines"
}

// ActualLineDTO represents one recorded batch of arrived units. A SKU may
// appear in several rows, so an auto-increment key preserves recording order.
type ActualLineDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU       string    `gorm:"type:varchar(64);not null"`
	Quantity  int       `gorm:"type:int;not null"`
	Condition int       `gorm:"type:smallint;not null"`
}

// TableName specifies the database table name for actual lines.
func (ActualLineDTO) TableName() string {
	return "receiving_actual_lines"
}

// DiscrepancyDTO represents one itemized mismatch found during reconciliation.
type DiscrepancyDTO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	TaskID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU     string    `gorm:"type:varchar(64);not null"`
	Message string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for discrepancies.
func (DiscrepancyDTO) TableName() string {
	return "receiving_discrepancies"
}

// fromDomain converts a receiving task aggregate to its database representation.
func fromDomain(task *receiving.Task) TaskDTO {
	taskID := task.ID().Bytes()

	expected := make([]ExpectedLineDTO, 0, len(task.Expected()))
	for _, line := range task.Expected() {
		expected = append(expected, ExpectedLineDTO{
			TaskID:   taskID,
			SKU:      line.SKU,
			Quantity: line.Quantity,
		})
	}

	actuals := make([]ActualLineDTO, 0, len(task.Actuals()))
	for _, line := range task.Actuals() {
		actuals = append(actuals, ActualLineDTO{
			TaskID:    taskID,
			SKU:       line.SKU,
			Quantity:  line.Quantity,
			Condition: int(line.Condition),
		})
	}

	discrepancies := make([]DiscrepancyDTO, 0, len(task.Discrepancies()))
	for _, entry := range task.Discrepancies() {
		discrepancies = append(discrepancies, DiscrepancyDTO{
			TaskID:  taskID,
			SKU:     entry.SKU,
			Message: entry.Message,
		})
	}

	return TaskDTO{
		ID:            taskID,
		WarehouseID:   task.WarehouseID().Bytes(),
		Supplier:      task.Supplier(),
		Status:        int(task.Status()),
		Version:       task.Version(),
		Expected:      expected,
		Actuals:       actuals,
		Discrepancies: discrepancies,
	}
}

// toDomain converts a database DTO to a receiving task aggregate.
func toDomain(dto TaskDTO) (*receiving.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	expected := make([]receiving.ExpectedLine, 0, len(dto.Expected))
	for _, line := range dto.Expected {
		expected = append(expected, receiving.ExpectedLine{
			SKU:      line.SKU,
			Quantity: line.Quantity,
		})
	}

	actuals := make([]receiving.ActualLine, 0, len(dto.Actuals))
	for _, line := range dto.Actuals {
		actuals = append(actuals, receiving.ActualLine{
			SKU:       line.SKU,
			Quantity:  line.Quantity,
			Condition: receiving.Condition(line.Condition),
		})
	}

	discrepancies := make([]receiving.DiscrepancyEntry, 0, len(dto.Discrepancies))
	for _, entry := range dto.Discrepancies {
		discrepancies = append(discrepancies, receiving.DiscrepancyEntry{
			SKU:     entry.SKU,
			Message: entry.Message,
		})
	}

	return receiving.RestoreTask(id, warehouseID, dto.Supplier,
		receiving.Status(dto.Status), expected, actuals, discrepancies, dto.Version)
}
