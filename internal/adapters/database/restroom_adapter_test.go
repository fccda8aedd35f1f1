package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func restroomColumns() []string {
	return []string{"id", "name", "address", "hours", "images", "features", "created_at", "updated_at"}
}

func TestRestroomAdapter_GetByID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewRestroomAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows(restroomColumns()).
		AddRow("r-1", "Central Park Restroom", "59th St & 5th Ave", "6 AM - 10 PM",
			[]byte(`["img1.jpg"]`), []byte(`["ADA Compliant","Baby Changing Station"]`), now, now)

	mock.ExpectQuery(`SELECT id, name, address, hours, images, features, created_at, updated_at\s+FROM restrooms`).
		WithArgs("r-1").
		WillReturnRows(rows)

	restroom, err := adapter.GetByID(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "Central Park Restroom", restroom.Name)
	assert.Equal(t, []string{"img1.jpg"}, restroom.Images)
	assert.Equal(t, []string{"ADA Compliant", "Baby Changing Station"}, restroom.Features)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestroomAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewRestroomAdapter(client)

	mock.ExpectQuery(`SELECT id, name, address, hours, images, features, created_at, updated_at\s+FROM restrooms`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	restroom, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, restroom)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestRestroomAdapter_List(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewRestroomAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows(restroomColumns()).
		AddRow("r-2", "Downtown Plaza Restroom", "123 Main St", "24 hours",
			[]byte(`[]`), []byte(`[]`), now, now).
		AddRow("r-1", "Central Park Restroom", "59th St & 5th Ave", "6 AM - 10 PM",
			[]byte(`["img1.jpg"]`), []byte(`["Clean"]`), now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT id, name, address, hours, images, features, created_at, updated_at\s+FROM restrooms\s+ORDER BY created_at DESC`).
		WillReturnRows(rows)

	restrooms, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, restrooms, 2)
	assert.Equal(t, "Downtown Plaza Restroom", restrooms[0].Name)
	assert.Empty(t, restrooms[0].Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestroomAdapter_List_Empty(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewRestroomAdapter(client)

	mock.ExpectQuery(`SELECT id, name, address, hours, images, features, created_at, updated_at\s+FROM restrooms`).
		WillReturnRows(sqlmock.NewRows(restroomColumns()))

	restrooms, err := adapter.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, restrooms)
	assert.NotNil(t, restrooms)
}

func TestMarshalStringSlice_NilBecomesEmptyArray(t *testing.T) {
	raw, err := marshalStringSlice(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestUnmarshalStringSlice_EmptyColumn(t *testing.T) {
	var dest []string
	require.NoError(t, unmarshalStringSlice(nil, &dest))
	assert.NotNil(t, dest)
	assert.Empty(t, dest)
}
