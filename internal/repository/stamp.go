package repository

import (
	"context"
	"errors"

	"heartbeat/internal/cache"
	"heartbeat/internal/models"
	"heartbeat/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StampRepository defines persistence operations for mood stamps.
type StampRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Stamp, error)
	GetByName(ctx context.Context, name string) (*models.Stamp, error)
	Create(ctx context.Context, stamp *models.Stamp) error
	Update(ctx context.Context, stamp *models.Stamp) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]models.Stamp, error)
}

type stampRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewStampRepository returns a new StampRepository implementation.
func NewStampRepository(db *gorm.DB) StampRepository {
	return &stampRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *stampRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Stamp, error) {
	var stamp models.Stamp
	key := cache.StampKey(id)

	err := cache.Aside(ctx, key, &stamp, cache.StampTTL, func() error {
		if err := r.db.WithContext(ctx).First(&stamp, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Stamp", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &stamp, nil
}

func (r *stampRepository) GetByName(ctx context.Context, name string) (*models.Stamp, error) {
	var stamp models.Stamp
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&stamp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &stamp, nil
}

func (r *stampRepository) Create(ctx context.Context, stamp *models.Stamp) error {
	defer r.metrics.TrackQuery("create", "stamps")()
	if err := r.db.WithContext(ctx).Create(stamp).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Stamp name already exists")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.StampListKey)
	return nil
}

func (r *stampRepository) Update(ctx context.Context, stamp *models.Stamp) error {
	defer r.metrics.TrackQuery("update", "stamps")()
	if err := r.db.WithContext(ctx).Save(stamp).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Stamp name already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateStamp(ctx, stamp.ID)
	return nil
}

// Delete removes the stamp. Dependent feelings are removed by the store's
// ON DELETE CASCADE; Select(clause.Associations) is deliberately not used so
// the cascade stays in one place.
func (r *stampRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Stamp{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStamp(ctx, id)
	return nil
}

// List returns stamps newest first. The first page is served cache-aside;
// the catalogue is small and changes only through staff writes, which
// invalidate the list key.
func (r *stampRepository) List(ctx context.Context, limit, offset int) ([]models.Stamp, error) {
	defer r.metrics.TrackQuery("list", "stamps")()

	if offset == 0 {
		var full []models.Stamp
		err := cache.Aside(ctx, cache.StampListKey, &full, cache.StampListTTL, func() error {
			if err := r.db.WithContext(ctx).
				Order("created_at DESC").
				Find(&full).Error; err != nil {
				return models.NewInternalError(err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(full) > limit {
			full = full[:limit]
		}
		return full, nil
	}

	var stamps []models.Stamp
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&stamps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stamps, nil
}
