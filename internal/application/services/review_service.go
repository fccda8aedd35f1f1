package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// ReviewService handles business logic for reviews
type ReviewService struct {
	repo         repositories.ReviewRepository
	restroomRepo repositories.RestroomRepository
	eventBus     providers.EventBus
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository, restroomRepo repositories.RestroomRepository) *ReviewService {
	return &ReviewService{
		repo:         repo,
		restroomRepo: restroomRepo,
	}
}

// SetEventBus enables change event publishing for new reviews.
func (s *ReviewService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// Create validates and persists a new review. Vote counters always start
// at zero regardless of what the submission carries.
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewValidationError("review is required")
	}
	if review.RestroomID == "" || review.UserName == "" || review.Comment == "" {
		return apperrors.NewValidationError("restroomId, userName and comment are required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}

	// The restroom must exist before a review is attached to it.
	if _, err := s.restroomRepo.GetByID(ctx, review.RestroomID); err != nil {
		return err
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.Helpful = 0
	review.Unhelpful = 0
	review.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, review); err != nil {
		return err
	}

	if s.eventBus != nil {
		event := entities.NewRestroomEvent(review.RestroomID, entities.RestroomEventTypeReviewCreated, map[string]interface{}{
			"review_id": review.ID,
		})
		// Invalidation is best-effort; publish failures never fail the write.
		_ = s.eventBus.Publish(ctx, providers.EventChannelRestroomUpdates, event)
	}

	return nil
}

// ListByRestroomID retrieves all reviews for a restroom, newest first
func (s *ReviewService) ListByRestroomID(ctx context.Context, restroomID string) ([]*entities.Review, error) {
	if restroomID == "" {
		return nil, apperrors.NewValidationError("restroomId is required")
	}
	return s.repo.ListByRestroomID(ctx, restroomID)
}

// Vote records one helpful or unhelpful vote on a review
func (s *ReviewService) Vote(ctx context.Context, reviewID string, helpful bool) error {
	if reviewID == "" {
		return apperrors.NewValidationError("review id is required")
	}
	return s.repo.IncrementVote(ctx, reviewID, helpful)
}
