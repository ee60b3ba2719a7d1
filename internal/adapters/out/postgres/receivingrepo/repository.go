package receivingrepo

import (
	"context"
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReceivingTaskRepository implements ReceivingTaskRepository using GORM.
type GormReceivingTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReceivingTaskRepository creates a new GORM receiving task repository.
func NewGormReceivingTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormReceivingTaskRepository {
	return &GormReceivingTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new receiving task to the database.
func (r *GormReceivingTaskRepository) Add(ctx context.Context, aggregate *receiving.Task) error {
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

// Update saves an existing receiving task using optimistic concurrency.
// The task row is only written when its stored version still matches the
// version the aggregate was loaded with. Expected lines are immutable after
// creation; actual lines and discrepancies are replaced wholesale, so Update
// must run inside the unit of work transaction.
func (r *GormReceivingTaskRepository) Update(ctx context.Context, aggregate *receiving.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("supplier", "status", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return receiving.ErrVersionConflict
	}

	if err := r.db.WithContext(ctx).
		Where("task_id = ?", dto.ID).
		Delete(&ActualLineDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Actuals) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Actuals).Error; err != nil {
			return err
		}
	}

	if err := r.db.WithContext(ctx).
		Where("task_id = ?", dto.ID).
		Delete(&DiscrepancyDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Discrepancies) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Discrepancies).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a receiving task by ID.
func (r *GormReceivingTaskRepository) Get(ctx context.Context, id kernel.UUID) (*receiving.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).
		Preload("Expected").
		Preload("Actuals").
		Preload("Discrepancies").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("receiving task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpen retrieves all tasks that have not reached a terminal status.
func (r *GormReceivingTaskRepository) GetAllOpen(ctx context.Context) ([]*receiving.Task, error) {
	var dtos []TaskDTO
	if err := r.db.WithContext(ctx).
		Preload("Expected").
		Preload("Actuals").
		Preload("Discrepancies").
		Where("status IN ?", []int{int(receiving.Pending), int(receiving.InProgress)}).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*receiving.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
