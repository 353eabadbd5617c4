package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"heartbeat/internal/models"
	"heartbeat/internal/observability"
	"heartbeat/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const maxCommentLen = 500

// FeelingService manages user-authored feeling entries.
type FeelingService struct {
	feelings repository.FeelingRepository
	stamps   repository.StampRepository
	users    repository.UserRepository
}

// NewFeelingService returns a new FeelingService.
func NewFeelingService(feelings repository.FeelingRepository, stamps repository.StampRepository, users repository.UserRepository) *FeelingService {
	return &FeelingService{feelings: feelings, stamps: stamps, users: users}
}

// RecordInput carries the raw feeling-creation fields. CreatedBy is the
// authenticated user, never taken from the request body.
type RecordInput struct {
	CreatedBy uuid.UUID
	StampID   uuid.UUID
	Comment   string
}

// Record creates a feeling entry for the acting user.
func (s *FeelingService) Record(ctx context.Context, in RecordInput) (*models.Feeling, error) {
	span, ctx := observability.NewSpan(ctx, "feeling.record")
	defer span.End()

	if in.StampID == uuid.Nil {
		return nil, models.NewValidationError("Stamp is required")
	}
	if utf8.RuneCountInString(in.Comment) > maxCommentLen {
		return nil, models.NewValidationError(fmt.Sprintf("Comment must not exceed %d characters", maxCommentLen))
	}

	stamp, err := s.stamps.GetByID(ctx, in.StampID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.String("stamp.name", stamp.Name))

	feeling := &models.Feeling{
		StampID:     stamp.ID,
		Comment:     in.Comment,
		CreatedByID: in.CreatedBy,
	}
	if err := s.feelings.Create(ctx, feeling); err != nil {
		span.SetError(err)
		return nil, err
	}
	feeling.Stamp = stamp

	observability.FeelingsRecorded.WithLabelValues(stamp.Name).Inc()
	return feeling, nil
}

// List returns feelings across all users, newest first.
func (s *FeelingService) List(ctx context.Context, limit, offset int) ([]models.Feeling, error) {
	return s.feelings.List(ctx, limit, offset)
}

// ListByUser returns the given user's feelings, newest first.
func (s *FeelingService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Feeling, error) {
	return s.feelings.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a feeling. Only the author or staff may delete an entry.
func (s *FeelingService) Delete(ctx context.Context, actorID, feelingID uuid.UUID) error {
	feeling, err := s.feelings.GetByID(ctx, feelingID)
	if err != nil {
		return err
	}

	if feeling.CreatedByID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsStaff {
			return models.NewForbiddenError("You may only delete your own feelings")
		}
	}

	return s.feelings.Delete(ctx, feelingID)
}
