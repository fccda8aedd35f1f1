package repositories

import (
	"context"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
)

// RestroomRepository defines the interface for restroom data operations
type RestroomRepository interface {
	// Create creates a new restroom
	Create(ctx context.Context, restroom *entities.Restroom) error

	// GetByID retrieves a restroom by ID
	GetByID(ctx context.Context, id string) (*entities.Restroom, error)

	// List retrieves all restrooms
	List(ctx context.Context) ([]*entities.Restroom, error)
}

// RestroomSearchRepository defines the interface for restroom search
// operations (e.g. Typesense)
type RestroomSearchRepository interface {
	// InitSchema ensures the search collection exists
	InitSchema(ctx context.Context) error

	// Index indexes a restroom
	Index(ctx context.Context, restroom *entities.Restroom) error

	// Search searches restrooms by free-text query
	Search(ctx context.Context, params SearchParams) ([]*entities.Restroom, error)
}

// SearchParams defines parameters for restroom search
type SearchParams struct {
	Query  string
	Limit  int
	Offset int
}
