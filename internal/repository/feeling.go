package repository

import (
	"context"
	"errors"

	"heartbeat/internal/models"
	"heartbeat/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeelingRepository defines persistence operations for feeling entries.
type FeelingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Feeling, error)
	Create(ctx context.Context, feeling *models.Feeling) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]models.Feeling, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Feeling, error)
}

type feelingRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewFeelingRepository returns a new FeelingRepository implementation.
func NewFeelingRepository(db *gorm.DB) FeelingRepository {
	return &feelingRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *feelingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Feeling, error) {
	var feeling models.Feeling
	if err := r.db.WithContext(ctx).
		Preload("Stamp").
		First(&feeling, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Feeling", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &feeling, nil
}

func (r *feelingRepository) Create(ctx context.Context, feeling *models.Feeling) error {
	defer r.metrics.TrackQuery("create", "feelings")()
	if err := r.db.WithContext(ctx).Create(feeling).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *feelingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Feeling{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *feelingRepository) List(ctx context.Context, limit, offset int) ([]models.Feeling, error) {
	defer r.metrics.TrackQuery("list", "feelings")()
	var feelings []models.Feeling
	if err := r.db.WithContext(ctx).
		Preload("Stamp").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&feelings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feelings, nil
}

func (r *feelingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Feeling, error) {
	var feelings []models.Feeling
	if err := r.db.WithContext(ctx).
		Preload("Stamp").
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&feelings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feelings, nil
}
