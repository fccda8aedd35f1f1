package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

func TestAnalyticsAdapter_GetByRestroomID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewAnalyticsAdapter(client)

	rows := sqlmock.NewRows([]string{"id", "restroom_id", "pros", "cons", "detected_features"}).
		AddRow("a-1", "r-1", []byte(`["Clean","Spacious"]`), []byte(`["Poor Lighting"]`), []byte(`["ADA Compliant"]`))

	mock.ExpectQuery(`SELECT id, restroom_id, pros, cons, detected_features\s+FROM analytics`).
		WithArgs("r-1").
		WillReturnRows(rows)

	analytics, err := adapter.GetByRestroomID(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean", "Spacious"}, analytics.Pros)
	assert.Equal(t, []string{"Poor Lighting"}, analytics.Cons)
	assert.Equal(t, []string{"ADA Compliant"}, analytics.DetectedFeatures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsAdapter_GetByRestroomID_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewAnalyticsAdapter(client)

	mock.ExpectQuery(`FROM analytics`).
		WithArgs("r-9").
		WillReturnError(sql.ErrNoRows)

	analytics, err := adapter.GetByRestroomID(context.Background(), "r-9")
	require.Error(t, err)
	assert.Nil(t, analytics)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestMenstrualProductAdapter_GetByRestroomID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMenstrualProductAdapter(client)

	restock := time.Now()
	rows := sqlmock.NewRows([]string{"id", "restroom_id", "available", "dispenser_type", "images", "restock_date"}).
		AddRow("m-1", "r-1", true, "free", []byte(`["dispenser.jpg"]`), restock)

	mock.ExpectQuery(`SELECT id, restroom_id, available, dispenser_type, images, restock_date\s+FROM menstrual_products`).
		WithArgs("r-1").
		WillReturnRows(rows)

	record, err := adapter.GetByRestroomID(context.Background(), "r-1")
	require.NoError(t, err)
	assert.True(t, record.Available)
	assert.Equal(t, "free", record.DispenserType)
	assert.Equal(t, []string{"dispenser.jpg"}, record.Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenstrualProductAdapter_GetByRestroomID_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMenstrualProductAdapter(client)

	mock.ExpectQuery(`FROM menstrual_products`).
		WithArgs("r-9").
		WillReturnError(sql.ErrNoRows)

	record, err := adapter.GetByRestroomID(context.Background(), "r-9")
	require.Error(t, err)
	assert.Nil(t, record)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
