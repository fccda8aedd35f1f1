package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// AnalyticsAdapter implements analytics snapshot persistence in Postgres.
type AnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAnalyticsAdapter creates a new analytics adapter.
func NewAnalyticsAdapter(client *postgres.Client) repositories.AnalyticsRepository {
	return &AnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByRestroomID retrieves the analytics snapshot for a restroom.
func (a *AnalyticsAdapter) GetByRestroomID(ctx context.Context, restroomID string) (*entities.Analytics, error) {
	query := `
		SELECT id, restroom_id, pros, cons, detected_features
		FROM analytics
		WHERE restroom_id = $1
	`

	analytics := &entities.Analytics{}
	var pros, cons, features []byte
	err := a.client.DB().QueryRowContext(ctx, query, restroomID).Scan(
		&analytics.ID,
		&analytics.RestroomID,
		&pros,
		&cons,
		&features,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("analytics for restroom %s not found", restroomID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get analytics", err)
	}

	if err := unmarshalStringSlice(pros, &analytics.Pros); err != nil {
		return nil, apperrors.NewInternalError("failed to decode analytics pros", err)
	}
	if err := unmarshalStringSlice(cons, &analytics.Cons); err != nil {
		return nil, apperrors.NewInternalError("failed to decode analytics cons", err)
	}
	if err := unmarshalStringSlice(features, &analytics.DetectedFeatures); err != nil {
		return nil, apperrors.NewInternalError("failed to decode analytics features", err)
	}

	return analytics, nil
}

// Upsert stores the analytics snapshot, replacing any existing one for the
// same restroom.
func (a *AnalyticsAdapter) Upsert(ctx context.Context, analytics *entities.Analytics) error {
	if analytics == nil {
		return apperrors.NewInternalError("analytics is nil", fmt.Errorf("analytics is nil"))
	}

	pros, err := marshalStringSlice(analytics.Pros)
	if err != nil {
		return apperrors.NewInternalError("failed to encode analytics pros", err)
	}
	cons, err := marshalStringSlice(analytics.Cons)
	if err != nil {
		return apperrors.NewInternalError("failed to encode analytics cons", err)
	}
	features, err := marshalStringSlice(analytics.DetectedFeatures)
	if err != nil {
		return apperrors.NewInternalError("failed to encode analytics features", err)
	}

	record := goqu.Record{
		"id":                analytics.ID,
		"restroom_id":       analytics.RestroomID,
		"pros":              pros,
		"cons":              cons,
		"detected_features": features,
	}

	query, args, err := a.db.Insert("analytics").
		Rows(record).
		OnConflict(goqu.DoUpdate("restroom_id", goqu.Record{
			"pros":              pros,
			"cons":              cons,
			"detected_features": features,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build analytics upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert analytics", err)
	}

	return nil
}
