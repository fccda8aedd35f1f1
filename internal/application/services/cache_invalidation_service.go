package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
)

// CacheInvalidationService handles cache invalidation based on events
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	warming  *CacheWarmingService
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetWarmingService enables re-warming the affected detail entry right
// after it is invalidated, so the next read is already a hit.
func (s *CacheInvalidationService) SetWarmingService(warming *CacheWarmingService) {
	s.warming = warming
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	// Subscribe to global restroom updates
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelRestroomUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to restroom updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Println("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Println("Cache invalidation service stopped")
}

// processEvents processes restroom events and invalidates cache accordingly
func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.RestroomEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent handles a single restroom event
func (s *CacheInvalidationService) handleEvent(event *entities.RestroomEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("Processing cache invalidation for event: %s (restroom: %s, type: %s)",
		event.ID, event.RestroomID, event.EventType)

	// Only the affected restroom's detail cache is invalidated for immediate
	// consistency. List and search caches carry short TTLs and refresh
	// naturally; invalidating them on every event would cause a stampede.
	if err := s.InvalidateRestroomCache(ctx, event.RestroomID); err != nil {
		log.Printf("Warning: Failed to invalidate restroom cache for %s: %v", event.RestroomID, err)
	} else if s.warming != nil {
		if err := s.warming.WarmSpecificRestroom(ctx, event.RestroomID); err != nil {
			log.Printf("Warning: Failed to re-warm restroom cache for %s: %v", event.RestroomID, err)
		}
	}

	if event.EventType == entities.RestroomEventTypeCreated {
		// New rows change the listing and search results, so drop those too
		if err := s.cache.DeletePattern(ctx, "http:cache:/api/restrooms*"); err != nil {
			log.Printf("Warning: Failed to invalidate restroom list cache: %v", err)
		}
	}
}

// InvalidateSearchCaches invalidates all search-related caches.
// This should only be called during maintenance or major data updates.
func (s *CacheInvalidationService) InvalidateSearchCaches(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, "http:cache:/api/restrooms/search*"); err != nil {
		return fmt.Errorf("failed to invalidate search caches: %w", err)
	}
	log.Println("Invalidated search caches")
	return nil
}

// InvalidateRestroomCache invalidates cache for a specific restroom
func (s *CacheInvalidationService) InvalidateRestroomCache(ctx context.Context, restroomID string) error {
	pattern := fmt.Sprintf("http:cache:/api/restrooms/%s*", restroomID)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to invalidate restroom cache: %w", err)
	}
	log.Printf("Invalidated restroom cache for %s", restroomID)
	return nil
}
