package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	tsclient "github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "restrooms"

// TypesenseAdapter implements restroom search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements RestroomSearchRepository
var _ repositories.RestroomSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "address", Type: "string"},
			{Name: "features", Type: "string[]", Facet: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Reset drops the collection so the next InitSchema recreates it empty.
func (a *TypesenseAdapter) Reset(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete typesense collection: %w", err)
	}
	return nil
}

// buildRestroomDocument flattens a restroom into the indexed document shape.
func buildRestroomDocument(restroom *entities.Restroom) map[string]interface{} {
	if restroom == nil {
		return nil
	}

	features := restroom.Features
	if features == nil {
		features = []string{}
	}

	return map[string]interface{}{
		"id":         restroom.ID,
		"name":       restroom.Name,
		"address":    restroom.Address,
		"features":   features,
		"created_at": restroom.CreatedAt.Unix(),
	}
}

// Index indexes a restroom
func (a *TypesenseAdapter) Index(ctx context.Context, restroom *entities.Restroom) error {
	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, buildRestroomDocument(restroom))
	if err != nil {
		return fmt.Errorf("failed to index restroom: %w", err)
	}

	return nil
}

// Search searches restrooms by free-text query over name and address
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Restroom, error) {
	query := params.Query
	if query == "" {
		query = "*"
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,address"),
		Page:    pointer.Int(params.Offset/limit + 1),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search restrooms: %w", err)
	}

	restrooms := []*entities.Restroom{}
	if result.Hits == nil {
		return restrooms, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense returns map[string]interface{}, so we need to cast safely
		restroom := &entities.Restroom{
			ID:       doc["id"].(string),
			Name:     doc["name"].(string),
			Address:  doc["address"].(string),
			Features: []string{},
		}

		if raw, ok := doc["features"].([]interface{}); ok {
			for _, feature := range raw {
				if value, ok := feature.(string); ok {
					restroom.Features = append(restroom.Features, value)
				}
			}
		}
		if createdAt, ok := doc["created_at"].(float64); ok {
			restroom.CreatedAt = time.Unix(int64(createdAt), 0)
		}

		restrooms = append(restrooms, restroom)
	}

	return restrooms, nil
}
