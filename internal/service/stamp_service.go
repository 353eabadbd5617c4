package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"heartbeat/internal/models"
	"heartbeat/internal/repository"

	"github.com/google/uuid"
)

const maxStampNameLen = 100

// StampService manages the administrator-curated set of mood stamps.
type StampService struct {
	stamps repository.StampRepository
}

// NewStampService returns a new StampService.
func NewStampService(stamps repository.StampRepository) *StampService {
	return &StampService{stamps: stamps}
}

// StampInput carries the editable stamp fields.
type StampInput struct {
	Name  string
	Score int
}

func validateStampName(name string) error {
	if name == "" {
		return models.NewValidationError("Stamp name is required")
	}
	if utf8.RuneCountInString(name) > maxStampNameLen {
		return models.NewValidationError(fmt.Sprintf("Stamp name must not exceed %d characters", maxStampNameLen))
	}
	return nil
}

// CreateStamp creates a new stamp with a unique name.
func (s *StampService) CreateStamp(ctx context.Context, in StampInput) (*models.Stamp, error) {
	if err := validateStampName(in.Name); err != nil {
		return nil, err
	}

	existing, err := s.stamps.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError(fmt.Sprintf("The stamp name %q is already taken", in.Name))
	}

	stamp := &models.Stamp{
		Name:  in.Name,
		Score: in.Score,
	}
	if err := s.stamps.Create(ctx, stamp); err != nil {
		return nil, err
	}
	return stamp, nil
}

// UpdateStamp overwrites the name and score of an existing stamp.
func (s *StampService) UpdateStamp(ctx context.Context, id uuid.UUID, in StampInput) (*models.Stamp, error) {
	if err := validateStampName(in.Name); err != nil {
		return nil, err
	}

	stamp, err := s.stamps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.stamps.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != stamp.ID {
		return nil, models.NewValidationError(fmt.Sprintf("The stamp name %q is already taken", in.Name))
	}

	stamp.Name = in.Name
	stamp.Score = in.Score
	if err := s.stamps.Update(ctx, stamp); err != nil {
		return nil, err
	}
	return stamp, nil
}

// DeleteStamp removes a stamp; dependent feelings cascade away with it.
func (s *StampService) DeleteStamp(ctx context.Context, id uuid.UUID) error {
	if _, err := s.stamps.GetByID(ctx, id); err != nil {
		return err
	}
	return s.stamps.Delete(ctx, id)
}

// GetStamp returns the stamp with the given ID.
func (s *StampService) GetStamp(ctx context.Context, id uuid.UUID) (*models.Stamp, error) {
	return s.stamps.GetByID(ctx, id)
}

// ListStamps returns stamps, newest first.
func (s *StampService) ListStamps(ctx context.Context, limit, offset int) ([]models.Stamp, error) {
	return s.stamps.List(ctx, limit, offset)
}
