package repositories

import (
	"context"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// ListByRestroomID retrieves all reviews for a restroom, newest first
	ListByRestroomID(ctx context.Context, restroomID string) ([]*entities.Review, error)

	// IncrementVote adds one helpful or unhelpful vote to a review
	IncrementVote(ctx context.Context, reviewID string, helpful bool) error
}
