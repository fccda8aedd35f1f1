package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// SeedService loads a small demo dataset: two restrooms, each with one
// review, an analytics snapshot and a menstrual product record.
type SeedService struct {
	restroomRepo  repositories.RestroomRepository
	reviewRepo    repositories.ReviewRepository
	analyticsRepo repositories.AnalyticsRepository
	menstrualRepo repositories.MenstrualProductRepository
	searchRepo    repositories.RestroomSearchRepository
}

// NewSeedService creates a new seed service
func NewSeedService(
	restroomRepo repositories.RestroomRepository,
	reviewRepo repositories.ReviewRepository,
	analyticsRepo repositories.AnalyticsRepository,
	menstrualRepo repositories.MenstrualProductRepository,
	searchRepo repositories.RestroomSearchRepository,
) *SeedService {
	return &SeedService{
		restroomRepo:  restroomRepo,
		reviewRepo:    reviewRepo,
		analyticsRepo: analyticsRepo,
		menstrualRepo: menstrualRepo,
		searchRepo:    searchRepo,
	}
}

// Seed inserts the demo dataset. Fixtures carry stable IDs, so repeated
// seeding is idempotent: restrooms and reviews that already exist are left
// in place, and the snapshot records are simply re-upserted.
func (s *SeedService) Seed(ctx context.Context) error {
	now := time.Now()

	restrooms := []*entities.Restroom{
		{
			ID:        "seed-restroom-1",
			Name:      "Central Park Restroom",
			Address:   "123 Park Ave, New York, NY",
			Hours:     "6 AM - 10 PM",
			Images:    []string{"image1.jpg", "image2.jpg"},
			Features:  []string{"Accessible", "Clean"},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "seed-restroom-2",
			Name:      "Downtown Plaza Restroom",
			Address:   "456 Main St, Los Angeles, CA",
			Hours:     "24/7",
			Images:    []string{"image3.jpg", "image4.jpg"},
			Features:  []string{"Family Friendly", "Well Lit"},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	created := make(map[string]bool)
	for _, restroom := range restrooms {
		_, err := s.restroomRepo.GetByID(ctx, restroom.ID)
		if err == nil {
			continue
		}
		if !apperrors.IsNotFound(err) {
			return err
		}

		if err := s.restroomRepo.Create(ctx, restroom); err != nil {
			return err
		}
		created[restroom.ID] = true
		if s.searchRepo != nil {
			if err := s.searchRepo.Index(ctx, restroom); err != nil {
				log.Warn().Err(err).Str("restroom_id", restroom.ID).Msg("failed to index seeded restroom")
			}
		}
	}

	reviews := []*entities.Review{
		{
			ID:            "seed-review-1",
			RestroomID:    restrooms[0].ID,
			UserName:      "John Doe",
			Rating:        5,
			Cleanliness:   5,
			Accessibility: 5,
			Privacy:       4,
			Comment:       "Very clean and accessible!",
			Helpful:       10,
			Unhelpful:     0,
			CreatedAt:     now,
		},
		{
			ID:            "seed-review-2",
			RestroomID:    restrooms[1].ID,
			UserName:      "Jane Smith",
			Rating:        4,
			Cleanliness:   4,
			Accessibility: 5,
			Privacy:       3,
			Comment:       "Good, but could use more privacy.",
			Helpful:       5,
			Unhelpful:     1,
			CreatedAt:     now,
		},
	}

	for _, review := range reviews {
		// Reviews have no upsert path; only attach them to restrooms
		// created in this run.
		if !created[review.RestroomID] {
			continue
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			return err
		}
	}

	snapshots := []*entities.Analytics{
		{
			ID:               "seed-analytics-1",
			RestroomID:       restrooms[0].ID,
			Pros:             []string{"Clean", "Accessible"},
			Cons:             []string{"Crowded"},
			DetectedFeatures: []string{"Handicap Accessible", "Baby Changing Station"},
		},
		{
			ID:               "seed-analytics-2",
			RestroomID:       restrooms[1].ID,
			Pros:             []string{"Open 24/7", "Well Lit"},
			Cons:             []string{"Noisy"},
			DetectedFeatures: []string{"Family Friendly", "Security Cameras"},
		},
	}

	for _, snapshot := range snapshots {
		if err := s.analyticsRepo.Upsert(ctx, snapshot); err != nil {
			return err
		}
	}

	records := []*entities.MenstrualProductRecord{
		{
			ID:            "seed-menstrual-1",
			RestroomID:    restrooms[0].ID,
			Available:     true,
			DispenserType: "Free",
			Images:        []string{"dispenser1.jpg"},
			RestockDate:   now,
		},
		{
			ID:            "seed-menstrual-2",
			RestroomID:    restrooms[1].ID,
			Available:     false,
			DispenserType: "Paid",
			Images:        []string{"dispenser2.jpg"},
			RestockDate:   now,
		},
	}

	for _, record := range records {
		if err := s.menstrualRepo.Upsert(ctx, record); err != nil {
			return err
		}
	}

	log.Info().Int("restrooms", len(restrooms)).Msg("database seeded")
	return nil
}
