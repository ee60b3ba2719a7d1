package pickingrepo

import (
	"context"
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
	"warehousing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPickingTaskRepository implements PickingTaskRepository using GORM.
type GormPickingTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickingTaskRepository creates a new GORM picking task repository.
func NewGormPickingTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormPickingTaskRepository {
	return &GormPickingTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new picking task to the database.
func (r *GormPickingTaskRepository) Add(ctx context.Context, aggregate *picking.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing picking task using optimistic concurrency.
// The task row is only written when its stored version still matches the
// version the aggregate was loaded with; otherwise picking.ErrVersionConflict
// is returned. Lines are replaced wholesale within the same call, so Update
// must run inside the unit of work transaction.
func (r *GormPickingTaskRepository) Update(ctx context.Context, aggregate *picking.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("status", "assignee", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return picking.ErrVersionConflict
	}

	if err := r.db.WithContext(ctx).
		Where("task_id = ?", dto.ID).
		Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto.Lines).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a picking task by ID.
func (r *GormPickingTaskRepository) Get(ctx context.Context, id kernel.UUID) (*picking.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).Preload("Lines").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("picking task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves all picking tasks created for one order.
func (r *GormPickingTaskRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Task, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("order_id = ?", orderID.Bytes()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllInStatus retrieves all tasks currently in the given status.
func (r *GormPickingTaskRepository) GetAllInStatus(ctx context.Context, status picking.Status) ([]*picking.Task, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("status = ?", int(status)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []TaskDTO) ([]*picking.Task, error) {
	tasks := make([]*picking.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
