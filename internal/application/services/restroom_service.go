package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// RestroomService handles business logic for restrooms
type RestroomService struct {
	repo          repositories.RestroomRepository
	searchRepo    repositories.RestroomSearchRepository
	reviewRepo    repositories.ReviewRepository
	analyticsRepo repositories.AnalyticsRepository
	menstrualRepo repositories.MenstrualProductRepository
	eventBus      providers.EventBus
}

// NewRestroomService creates a new restroom service
func NewRestroomService(
	repo repositories.RestroomRepository,
	searchRepo repositories.RestroomSearchRepository,
	reviewRepo repositories.ReviewRepository,
	analyticsRepo repositories.AnalyticsRepository,
	menstrualRepo repositories.MenstrualProductRepository,
) *RestroomService {
	return &RestroomService{
		repo:          repo,
		searchRepo:    searchRepo,
		reviewRepo:    reviewRepo,
		analyticsRepo: analyticsRepo,
		menstrualRepo: menstrualRepo,
	}
}

// SetEventBus enables change event publishing. Without a bus the service
// works normally; downstream cache invalidation just never triggers.
func (s *RestroomService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// publishEvent publishes a restroom change event. Failures are logged, never
// surfaced to the caller.
func (s *RestroomService) publishEvent(ctx context.Context, restroomID string, eventType entities.RestroomEventType, changedFields map[string]interface{}) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewRestroomEvent(restroomID, eventType, changedFields)
	if err := s.eventBus.Publish(ctx, providers.EventChannelRestroomUpdates, event); err != nil {
		log.Warn().Err(err).Str("restroom_id", restroomID).Msg("failed to publish restroom event")
	}
}

// Create validates and persists a new restroom, then indexes it
func (s *RestroomService) Create(ctx context.Context, restroom *entities.Restroom) error {
	if restroom == nil {
		return apperrors.NewValidationError("restroom is required")
	}
	if restroom.Name == "" || restroom.Address == "" {
		return apperrors.NewValidationError("name and address are required")
	}

	if restroom.ID == "" {
		restroom.ID = uuid.New().String()
	}
	if restroom.Hours == "" {
		restroom.Hours = entities.DefaultHours
	}
	if restroom.Images == nil {
		restroom.Images = []string{}
	}
	if restroom.Features == nil {
		restroom.Features = []string{}
	}

	now := time.Now()
	restroom.CreatedAt = now
	restroom.UpdatedAt = now

	if err := s.repo.Create(ctx, restroom); err != nil {
		return err
	}

	// Index in search engine. Log but don't fail the request (eventual
	// consistency).
	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, restroom); err != nil {
			log.Warn().Err(err).Str("restroom_id", restroom.ID).Msg("failed to index restroom")
		}
	}

	s.publishEvent(ctx, restroom.ID, entities.RestroomEventTypeCreated, map[string]interface{}{
		"name": restroom.Name,
	})

	return nil
}

// List retrieves all restrooms
func (s *RestroomService) List(ctx context.Context) ([]*entities.Restroom, error) {
	return s.repo.List(ctx)
}

// Search searches restrooms using the search engine when available, falling
// back to a full listing
func (s *RestroomService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Restroom, error) {
	if s.searchRepo != nil {
		return s.searchRepo.Search(ctx, params)
	}
	return s.repo.List(ctx)
}

// GetDetail composes the full detail view for one restroom: the restroom
// itself, the recomputed rating summary, its reviews, and the optional
// analytics snapshot and menstrual product record.
func (s *RestroomService) GetDetail(ctx context.Context, id string) (*entities.RestroomDetail, error) {
	restroom, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByRestroomID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entities.RestroomDetail{
		Restroom:      *restroom,
		RatingSummary: entities.SummarizeRatings(reviews),
		Reviews:       reviews,
	}

	// Optional records stay nil when absent; other lookup failures are
	// logged without failing the whole view.
	analytics, err := s.analyticsRepo.GetByRestroomID(ctx, id)
	switch {
	case err == nil:
		detail.Analytics = analytics
	case !apperrors.IsNotFound(err):
		log.Warn().Err(err).Str("restroom_id", id).Msg("failed to load analytics snapshot")
	}

	menstrual, err := s.menstrualRepo.GetByRestroomID(ctx, id)
	switch {
	case err == nil:
		detail.MenstrualProducts = menstrual
	case !apperrors.IsNotFound(err):
		log.Warn().Err(err).Str("restroom_id", id).Msg("failed to load menstrual product record")
	}

	return detail, nil
}

// UpdateMenstrualProducts stores the menstrual product record for a
// restroom, creating it when absent.
func (s *RestroomService) UpdateMenstrualProducts(ctx context.Context, record *entities.MenstrualProductRecord) error {
	if record == nil || record.RestroomID == "" {
		return apperrors.NewValidationError("restroomId is required")
	}

	// The restroom must exist before attaching a record to it.
	if _, err := s.repo.GetByID(ctx, record.RestroomID); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Images == nil {
		record.Images = []string{}
	}

	if err := s.menstrualRepo.Upsert(ctx, record); err != nil {
		return err
	}

	s.publishEvent(ctx, record.RestroomID, entities.RestroomEventTypeMenstrualProductsUpdate, map[string]interface{}{
		"available": record.Available,
	})

	return nil
}
