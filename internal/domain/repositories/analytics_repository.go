package repositories

import (
	"context"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
)

// AnalyticsRepository defines the interface for analytics snapshot
// operations. At most one snapshot exists per restroom.
type AnalyticsRepository interface {
	// GetByRestroomID retrieves the snapshot for a restroom, or a not-found
	// error when none exists
	GetByRestroomID(ctx context.Context, restroomID string) (*entities.Analytics, error)

	// Upsert stores the snapshot, replacing any existing one
	Upsert(ctx context.Context, analytics *entities.Analytics) error
}

// MenstrualProductRepository defines the interface for menstrual product
// record operations. At most one record exists per restroom.
type MenstrualProductRepository interface {
	// GetByRestroomID retrieves the record for a restroom, or a not-found
	// error when none exists
	GetByRestroomID(ctx context.Context, restroomID string) (*entities.MenstrualProductRecord, error)

	// Upsert stores the record, replacing any existing one
	Upsert(ctx context.Context, record *entities.MenstrualProductRecord) error
}
