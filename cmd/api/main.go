package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relievo/restroom-finder/backend/internal/adapters/cache"
	"github.com/relievo/restroom-finder/backend/internal/adapters/database"
	"github.com/relievo/restroom-finder/backend/internal/adapters/events"
	"github.com/relievo/restroom-finder/backend/internal/adapters/search"
	"github.com/relievo/restroom-finder/backend/internal/api/handlers"
	"github.com/relievo/restroom-finder/backend/internal/api/middleware"
	"github.com/relievo/restroom-finder/backend/internal/api/routes"
	"github.com/relievo/restroom-finder/backend/internal/application/services"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/huggingface"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/openai"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/postgres"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/redis"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/typesense"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/vision"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/observability"
	"github.com/relievo/restroom-finder/backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		log.Println("Typesense client initialized successfully")
	}

	// Initialize adapters

	restroomAdapter := database.NewRestroomAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	analyticsAdapter := database.NewAnalyticsAdapter(pgClient)
	menstrualAdapter := database.NewMenstrualProductAdapter(pgClient)

	var searchRepo repositories.RestroomSearchRepository

	if typesenseClient != nil {

		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists

		if err := adapter.InitSchema(context.Background()); err != nil {

			log.Printf("Warning: Failed to init Typesense schema: %v", err)

		}

		searchRepo = adapter

	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for cache invalidation
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize analysis providers. Each is optional; the corresponding
	// endpoint reports the missing configuration when unset.

	var classifier providers.CommentClassifier
	if cfg.HuggingFace.APIKey == "" {
		log.Println("Warning: HUGGINGFACE_API_KEY is not set; comment classification disabled")
	} else {
		hfClient, err := huggingface.NewClient(&cfg.HuggingFace)
		if err != nil {
			log.Printf("Warning: Failed to initialize Hugging Face client: %v", err)
		} else {
			classifier = hfClient
		}
	}

	var summarizer providers.CommentSummarizer
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; generative comment analysis disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			summarizer = openaiClient
		}
	}

	var detector providers.LabelDetector
	visionMissing := cfg.Vision.MissingFields()
	if len(visionMissing) > 0 {
		log.Printf("Warning: image analysis disabled; missing %v", visionMissing)
	} else {
		visionClient, err := vision.NewClient(&cfg.Vision)
		if err != nil {
			log.Printf("Warning: Failed to initialize Vision client: %v", err)
		} else {
			detector = visionClient
		}
	}

	// Initialize services

	restroomService := services.NewRestroomService(
		restroomAdapter,
		searchRepo,
		reviewAdapter,
		analyticsAdapter,
		menstrualAdapter,
	)

	reviewService := services.NewReviewService(reviewAdapter, restroomAdapter)

	// Set event bus for cache invalidation on writes
	if eventBus != nil {
		restroomService.SetEventBus(eventBus)
		reviewService.SetEventBus(eventBus)
	}

	// Start cache warming for the read-heavy listing endpoints
	var warmingService *services.CacheWarmingService
	if cacheProvider != nil {
		warmingService = services.NewCacheWarmingService(restroomService, cacheProvider)
		go warmingService.StartPeriodicWarming(ctx, 5*time.Minute)
		log.Println("Cache warming service started (refreshes every 5 minutes)")
	}

	// Initialize cache invalidation service
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if warmingService != nil {
			cacheInvalidationService.SetWarmingService(warmingService)
		}
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			log.Println("Cache invalidation service started successfully")
		}
	}

	commentAnalysisService := services.NewCommentAnalysisService(
		classifier,
		summarizer,
		analyticsAdapter,
	)
	if eventBus != nil {
		commentAnalysisService.SetEventBus(eventBus)
	}

	imageAnalysisService := services.NewImageAnalysisService(detector, commentAnalysisService)

	seedService := services.NewSeedService(
		restroomAdapter,
		reviewAdapter,
		analyticsAdapter,
		menstrualAdapter,
		searchRepo,
	)

	// Initialize handlers

	restroomHandler := handlers.NewRestroomHandler(restroomService)

	reviewHandler := handlers.NewReviewHandler(reviewService)

	analysisHandler := handlers.NewAnalysisHandler(commentAnalysisService, imageAnalysisService, visionMissing)

	seedHandler := handlers.NewSeedHandler(seedService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		restroomHandler,
		reviewHandler,
		analysisHandler,
		seedHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	// Stop cache invalidation service
	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Println("Server stopped")
}
