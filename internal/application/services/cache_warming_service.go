package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
)

// Warmed entries must live under the same keys and TTLs the HTTP cache
// middleware serves, or they can never hit.
const (
	listCacheKey      = "http:cache:/api/restrooms"
	detailCachePrefix = "http:cache:/api/restrooms/"

	listCacheTTLSeconds   = 300
	detailCacheTTLSeconds = 300
)

// RestroomReader captures the read operations cache warming depends on.
type RestroomReader interface {
	List(ctx context.Context) ([]*entities.Restroom, error)
	GetDetail(ctx context.Context, id string) (*entities.RestroomDetail, error)
}

// CacheWarmingService pre-renders the restroom listing and detail responses
// into the HTTP response cache so the first request after a cold start or an
// invalidation is already a hit.
type CacheWarmingService struct {
	restrooms RestroomReader
	cache     providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(
	restrooms RestroomReader,
	cache providers.CacheProvider,
) *CacheWarmingService {
	return &CacheWarmingService{
		restrooms: restrooms,
		cache:     cache,
	}
}

// WarmCache renders and stores the restroom listing plus every restroom's
// detail view
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	log.Println("Starting cache warming...")

	restrooms, err := s.restrooms.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch restrooms: %w", err)
	}

	// The listing endpoint's exact response shape
	listing, err := json.Marshal(map[string]interface{}{
		"restrooms": restrooms,
		"count":     len(restrooms),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal restroom list: %w", err)
	}
	if err := s.cache.Set(ctx, listCacheKey, listing, listCacheTTLSeconds); err != nil {
		return fmt.Errorf("failed to cache restroom list: %w", err)
	}

	// Render each restroom's composed detail view
	items := make(map[string][]byte)
	for _, restroom := range restrooms {
		detail, err := s.restrooms.GetDetail(ctx, restroom.ID)
		if err != nil {
			log.Printf("Failed to load detail for restroom %s: %v", restroom.ID, err)
			continue
		}
		data, err := json.Marshal(detail)
		if err != nil {
			log.Printf("Failed to marshal restroom %s: %v", restroom.ID, err)
			continue
		}
		items[detailCachePrefix+restroom.ID] = data
	}

	if len(items) > 0 {
		if err := s.cache.SetMulti(ctx, items, detailCacheTTLSeconds); err != nil {
			return fmt.Errorf("failed to cache restroom details: %w", err)
		}
		log.Printf("Warmed cache with %d restroom details", len(items))
	}

	log.Println("Cache warming completed")
	return nil
}

// StartPeriodicWarming starts a background goroutine that periodically warms the cache
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	// Initial warming
	if err := s.WarmCache(ctx); err != nil {
		log.Printf("Initial cache warming failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("Stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(context.Background()); err != nil {
					log.Printf("Periodic cache warming failed: %v", err)
				}
			}
		}
	}()
	log.Printf("Started periodic cache warming every %v", interval)
}

// WarmSpecificRestroom re-renders one restroom's detail view into the cache,
// typically right after its cached entry was invalidated
func (s *CacheWarmingService) WarmSpecificRestroom(ctx context.Context, restroomID string) error {
	detail, err := s.restrooms.GetDetail(ctx, restroomID)
	if err != nil {
		return fmt.Errorf("failed to load restroom detail: %w", err)
	}

	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal restroom detail: %w", err)
	}

	if err := s.cache.Set(ctx, detailCachePrefix+restroomID, data, detailCacheTTLSeconds); err != nil {
		return fmt.Errorf("failed to cache restroom detail: %w", err)
	}

	log.Printf("Warmed cache for restroom %s", restroomID)
	return nil
}
