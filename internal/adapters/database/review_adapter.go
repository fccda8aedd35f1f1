package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// ReviewAdapter implements review persistence in Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a review record.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewInternalError("review is nil", fmt.Errorf("review is nil"))
	}

	record := goqu.Record{
		"id":            review.ID,
		"restroom_id":   review.RestroomID,
		"user_name":     review.UserName,
		"rating":        review.Rating,
		"cleanliness":   review.Cleanliness,
		"accessibility": review.Accessibility,
		"privacy":       review.Privacy,
		"comment":       review.Comment,
		"helpful":       review.Helpful,
		"unhelpful":     review.Unhelpful,
		"created_at":    review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// ListByRestroomID retrieves all reviews for a restroom, newest first.
func (a *ReviewAdapter) ListByRestroomID(ctx context.Context, restroomID string) ([]*entities.Review, error) {
	query := `
		SELECT id, restroom_id, user_name, rating, cleanliness, accessibility,
			privacy, comment, helpful, unhelpful, created_at
		FROM reviews
		WHERE restroom_id = $1
		ORDER BY created_at DESC
	`

	rows, err := a.client.DB().QueryContext(ctx, query, restroomID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review := &entities.Review{}
		err := rows.Scan(
			&review.ID,
			&review.RestroomID,
			&review.UserName,
			&review.Rating,
			&review.Cleanliness,
			&review.Accessibility,
			&review.Privacy,
			&review.Comment,
			&review.Helpful,
			&review.Unhelpful,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

// IncrementVote adds one helpful or unhelpful vote to a review.
func (a *ReviewAdapter) IncrementVote(ctx context.Context, reviewID string, helpful bool) error {
	column := "unhelpful"
	if helpful {
		column = "helpful"
	}

	query := fmt.Sprintf("UPDATE reviews SET %s = %s + 1 WHERE id = $1", column, column)

	result, err := a.client.DB().ExecContext(ctx, query, reviewID)
	if err != nil {
		return apperrors.NewInternalError("failed to record review vote", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", reviewID))
	}

	return nil
}
