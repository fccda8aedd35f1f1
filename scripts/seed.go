package main

import (
	"context"
	"log"
	"os"

	"github.com/relievo/restroom-finder/backend/internal/adapters/database"
	"github.com/relievo/restroom-finder/backend/internal/adapters/search"
	"github.com/relievo/restroom-finder/backend/internal/application/services"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/postgres"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/typesense"
	"github.com/relievo/restroom-finder/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	var searchRepo repositories.RestroomSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err != nil {
		log.Printf("Warning: Typesense unavailable, seeding without search index: %v", err)
	} else {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Printf("Warning: failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				analytics,
				menstrual_products,
				reviews,
				restrooms
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	seedService := services.NewSeedService(
		database.NewRestroomAdapter(pgClient),
		database.NewReviewAdapter(pgClient),
		database.NewAnalyticsAdapter(pgClient),
		database.NewMenstrualProductAdapter(pgClient),
		searchRepo,
	)

	if err := seedService.Seed(ctx); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete.")
}
