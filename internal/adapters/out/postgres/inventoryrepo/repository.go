package inventoryrepo

import (
	"context"
	"errors"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inventory item to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.WarehouseID(), aggregate)
	return nil
}

// Update saves an existing inventory item using optimistic concurrency.
// The row is only written when its stored version still matches the version
// the aggregate was loaded with; otherwise inventory.ErrVersionConflict
// is returned and the caller must reload and retry.
func (r *GormInventoryRepository) Update(ctx context.Context, aggregate *inventory.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("warehouse_id = ? AND sku = ? AND version = ?", dto.WarehouseID, dto.SKU, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return inventory.ErrVersionConflict
	}

	r.tracker.TrackAggregate(aggregate.WarehouseID(), aggregate)
	return nil
}

// Get retrieves the item tracking one SKU in one warehouse.
func (r *GormInventoryRepository) Get(ctx context.Context, warehouseID kernel.UUID, sku string) (*inventory.Item, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "warehouse_id = ? AND sku = ?", warehouseID.Bytes(), sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sku", sku)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBySKUs retrieves the items for the given SKUs in one warehouse, ordered
// by SKU ascending. Every requested SKU must be tracked; an untracked SKU
// yields an ObjectNotFoundError so callers never operate on a partial set.
func (r *GormInventoryRepository) GetBySKUs(ctx context.Context, warehouseID kernel.UUID, skus []string) ([]*inventory.Item, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}
	if len(skus) == 0 {
		return nil, errs.NewValueIsRequiredError("skus")
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku IN ?", warehouseID.Bytes(), skus).
		Order("sku ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(dtos))
	for _, dto := range dtos {
		found[dto.SKU] = struct{}{}
	}
	for _, sku := range skus {
		if _, ok := found[sku]; !ok {
			return nil, errs.NewObjectNotFoundError("sku", sku)
		}
	}

	items := make([]*inventory.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// GetBelowReorderPoint retrieves all items whose available quantity has fallen
// to or below their reorder point, across all warehouses.
func (r *GormInventoryRepository) GetBelowReorderPoint(ctx context.Context) ([]*inventory.Item, error) {
	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).
		Where("on_hand - reserved <= reorder_point").
		Order("warehouse_id, sku").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAll retrieves every tracked item across all warehouses.
func (r *GormInventoryRepository) GetAll(ctx context.Context) ([]*inventory.Item, error) {
	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).
		Order("warehouse_id, sku").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ItemDTO) ([]*inventory.Item, error) {
	items := make([]*inventory.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
