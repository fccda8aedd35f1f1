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

// MenstrualProductAdapter implements menstrual product record persistence
// in Postgres.
type MenstrualProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMenstrualProductAdapter creates a new menstrual product adapter.
func NewMenstrualProductAdapter(client *postgres.Client) repositories.MenstrualProductRepository {
	return &MenstrualProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByRestroomID retrieves the menstrual product record for a restroom.
func (a *MenstrualProductAdapter) GetByRestroomID(ctx context.Context, restroomID string) (*entities.MenstrualProductRecord, error) {
	query := `
		SELECT id, restroom_id, available, dispenser_type, images, restock_date
		FROM menstrual_products
		WHERE restroom_id = $1
	`

	record := &entities.MenstrualProductRecord{}
	var images []byte
	err := a.client.DB().QueryRowContext(ctx, query, restroomID).Scan(
		&record.ID,
		&record.RestroomID,
		&record.Available,
		&record.DispenserType,
		&images,
		&record.RestockDate,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("menstrual product record for restroom %s not found", restroomID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get menstrual product record", err)
	}

	if err := unmarshalStringSlice(images, &record.Images); err != nil {
		return nil, apperrors.NewInternalError("failed to decode menstrual product images", err)
	}

	return record, nil
}

// Upsert stores the menstrual product record, replacing any existing one for
// the same restroom.
func (a *MenstrualProductAdapter) Upsert(ctx context.Context, record *entities.MenstrualProductRecord) error {
	if record == nil {
		return apperrors.NewInternalError("menstrual product record is nil", fmt.Errorf("record is nil"))
	}

	images, err := marshalStringSlice(record.Images)
	if err != nil {
		return apperrors.NewInternalError("failed to encode menstrual product images", err)
	}

	row := goqu.Record{
		"id":             record.ID,
		"restroom_id":    record.RestroomID,
		"available":      record.Available,
		"dispenser_type": record.DispenserType,
		"images":         images,
		"restock_date":   record.RestockDate,
	}

	query, args, err := a.db.Insert("menstrual_products").
		Rows(row).
		OnConflict(goqu.DoUpdate("restroom_id", goqu.Record{
			"available":      record.Available,
			"dispenser_type": record.DispenserType,
			"images":         images,
			"restock_date":   record.RestockDate,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build menstrual product upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert menstrual product record", err)
	}

	return nil
}
