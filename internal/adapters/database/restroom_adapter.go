package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// RestroomAdapter implements restroom persistence in Postgres.
type RestroomAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRestroomAdapter creates a new restroom adapter.
func NewRestroomAdapter(client *postgres.Client) repositories.RestroomRepository {
	return &RestroomAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// marshalStringSlice encodes a string slice for a jsonb column. A nil slice
// is stored as an empty array so reads never see SQL NULL.
func marshalStringSlice(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

// unmarshalStringSlice decodes a jsonb column into a string slice.
func unmarshalStringSlice(raw []byte, dest *[]string) error {
	if len(raw) == 0 {
		*dest = []string{}
		return nil
	}
	return json.Unmarshal(raw, dest)
}

// Create inserts a restroom record.
func (a *RestroomAdapter) Create(ctx context.Context, restroom *entities.Restroom) error {
	if restroom == nil {
		return apperrors.NewInternalError("restroom is nil", fmt.Errorf("restroom is nil"))
	}

	images, err := marshalStringSlice(restroom.Images)
	if err != nil {
		return apperrors.NewInternalError("failed to encode restroom images", err)
	}
	features, err := marshalStringSlice(restroom.Features)
	if err != nil {
		return apperrors.NewInternalError("failed to encode restroom features", err)
	}

	record := goqu.Record{
		"id":         restroom.ID,
		"name":       restroom.Name,
		"address":    restroom.Address,
		"hours":      restroom.Hours,
		"images":     images,
		"features":   features,
		"created_at": restroom.CreatedAt,
		"updated_at": restroom.UpdatedAt,
	}

	query, args, err := a.db.Insert("restrooms").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build restroom insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create restroom", err)
	}

	return nil
}

// GetByID retrieves a restroom by ID.
func (a *RestroomAdapter) GetByID(ctx context.Context, id string) (*entities.Restroom, error) {
	query := `
		SELECT id, name, address, hours, images, features, created_at, updated_at
		FROM restrooms
		WHERE id = $1
	`

	restroom := &entities.Restroom{}
	var images, features []byte
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&restroom.ID,
		&restroom.Name,
		&restroom.Address,
		&restroom.Hours,
		&images,
		&features,
		&restroom.CreatedAt,
		&restroom.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("restroom with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get restroom", err)
	}

	if err := unmarshalStringSlice(images, &restroom.Images); err != nil {
		return nil, apperrors.NewInternalError("failed to decode restroom images", err)
	}
	if err := unmarshalStringSlice(features, &restroom.Features); err != nil {
		return nil, apperrors.NewInternalError("failed to decode restroom features", err)
	}

	return restroom, nil
}

// List retrieves all restrooms, newest first.
func (a *RestroomAdapter) List(ctx context.Context) ([]*entities.Restroom, error) {
	query := `
		SELECT id, name, address, hours, images, features, created_at, updated_at
		FROM restrooms
		ORDER BY created_at DESC
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list restrooms", err)
	}
	defer rows.Close()

	restrooms := []*entities.Restroom{}
	for rows.Next() {
		restroom := &entities.Restroom{}
		var images, features []byte
		err := rows.Scan(
			&restroom.ID,
			&restroom.Name,
			&restroom.Address,
			&restroom.Hours,
			&images,
			&features,
			&restroom.CreatedAt,
			&restroom.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan restroom", err)
		}
		if err := unmarshalStringSlice(images, &restroom.Images); err != nil {
			return nil, apperrors.NewInternalError("failed to decode restroom images", err)
		}
		if err := unmarshalStringSlice(features, &restroom.Features); err != nil {
			return nil, apperrors.NewInternalError("failed to decode restroom features", err)
		}
		restrooms = append(restrooms, restroom)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating restrooms", err)
	}

	return restrooms, nil
}
