package ledgerrepo

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLedger implements StockLedger using GORM.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GORM stock ledger.
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Append persists the given movements. A movement whose idempotency key is
// already recorded is silently skipped, so replaying the same business action
// never double-counts stock.
func (l *GormStockLedger) Append(ctx context.Context, movements []inventory.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	dtos := make([]MovementDTO, 0, len(movements))
	for _, movement := range movements {
		dtos = append(dtos, fromDomain(movement))
	}

	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(&dtos).Error
}

// GetByOrder retrieves all movements related to one order, oldest first.
func (l *GormStockLedger) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]inventory.Movement, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	if err := l.db.WithContext(ctx).
		Where("related_order_id = ?", orderID.Bytes()).
		Order("occurred_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByTask retrieves all movements related to one picking or receiving task,
// oldest first.
func (l *GormStockLedger) GetByTask(ctx context.Context, taskID kernel.UUID) ([]inventory.Movement, error) {
	if err := taskID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	if err := l.db.WithContext(ctx).
		Where("related_task_id = ?", taskID.Bytes()).
		Order("occurred_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetBySKU retrieves the full movement history of one SKU in one warehouse,
// oldest first.
func (l *GormStockLedger) GetBySKU(ctx context.Context, warehouseID kernel.UUID, sku string) ([]inventory.Movement, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	var dtos []MovementDTO
	if err := l.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku = ?", warehouseID.Bytes(), sku).
		Order("occurred_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []MovementDTO) ([]inventory.Movement, error) {
	movements := make([]inventory.Movement, 0, len(dtos))
	for _, dto := range dtos {
		movement, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, nil
}
