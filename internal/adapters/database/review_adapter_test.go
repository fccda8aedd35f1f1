package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

func reviewColumns() []string {
	return []string{
		"id", "restroom_id", "user_name", "rating", "cleanliness",
		"accessibility", "privacy", "comment", "helpful", "unhelpful", "created_at",
	}
}

func TestReviewAdapter_ListByRestroomID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewReviewAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows(reviewColumns()).
		AddRow("rev-2", "r-1", "Jane", 5, 5, 4, 5, "Spotless and bright", 3, 0, now).
		AddRow("rev-1", "r-1", "Sam", 2, 1, 3, 2, "No soap available", 1, 1, now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT id, restroom_id, user_name, rating, cleanliness, accessibility,\s+privacy, comment, helpful, unhelpful, created_at\s+FROM reviews`).
		WithArgs("r-1").
		WillReturnRows(rows)

	reviews, err := adapter.ListByRestroomID(context.Background(), "r-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Jane", reviews[0].UserName)
	assert.Equal(t, 3, reviews[0].Helpful)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAdapter_ListByRestroomID_Empty(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewReviewAdapter(client)

	mock.ExpectQuery(`FROM reviews`).
		WithArgs("r-9").
		WillReturnRows(sqlmock.NewRows(reviewColumns()))

	reviews, err := adapter.ListByRestroomID(context.Background(), "r-9")
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestReviewAdapter_IncrementVote_Helpful(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewReviewAdapter(client)

	mock.ExpectExec(`UPDATE reviews SET helpful = helpful \+ 1 WHERE id = \$1`).
		WithArgs("rev-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.IncrementVote(context.Background(), "rev-1", true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAdapter_IncrementVote_Unhelpful(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewReviewAdapter(client)

	mock.ExpectExec(`UPDATE reviews SET unhelpful = unhelpful \+ 1 WHERE id = \$1`).
		WithArgs("rev-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.IncrementVote(context.Background(), "rev-1", false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAdapter_IncrementVote_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewReviewAdapter(client)

	mock.ExpectExec(`UPDATE reviews SET helpful = helpful \+ 1 WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.IncrementVote(context.Background(), "missing", true)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
