package routes

import (
	"net/http"

	"github.com/relievo/restroom-finder/backend/internal/api/handlers"
	"github.com/relievo/restroom-finder/backend/internal/api/middleware"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	restroomHandler *handlers.RestroomHandler

	reviewHandler *handlers.ReviewHandler

	analysisHandler *handlers.AnalysisHandler

	seedHandler *handlers.SeedHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	restroomHandler *handlers.RestroomHandler,

	reviewHandler *handlers.ReviewHandler,

	analysisHandler *handlers.AnalysisHandler,

	seedHandler *handlers.SeedHandler,

	cacheMiddleware *middleware.CacheMiddleware,

	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		restroomHandler: restroomHandler,

		reviewHandler: reviewHandler,

		analysisHandler: analysisHandler,

		seedHandler: seedHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Restroom endpoints

	r.mux.HandleFunc("GET /api/restrooms", r.restroomHandler.ListRestrooms)

	r.mux.HandleFunc("GET /api/restrooms/search", r.restroomHandler.SearchRestrooms)

	r.mux.HandleFunc("POST /api/restrooms", r.restroomHandler.CreateRestroom)

	r.mux.HandleFunc("GET /api/restrooms/{id}", r.restroomHandler.GetRestroom)

	r.mux.HandleFunc("PUT /api/restrooms/{id}/menstrual-products", r.restroomHandler.UpdateMenstrualProducts)

	// Review endpoints

	r.mux.HandleFunc("GET /api/reviews", r.reviewHandler.ListReviews)

	r.mux.HandleFunc("POST /api/reviews", r.reviewHandler.CreateReview)

	r.mux.HandleFunc("POST /api/reviews/{id}/vote", r.reviewHandler.VoteReview)

	// Analysis endpoints

	r.mux.HandleFunc("POST /api/analysis/comments", r.analysisHandler.ClassifyComments)

	r.mux.HandleFunc("POST /api/analysis/comments/generative", r.analysisHandler.SummarizeComments)

	r.mux.HandleFunc("POST /api/analysis/images", r.analysisHandler.AnalyzeImages)

	// Seed endpoint for demo data
	if r.seedHandler != nil {
		r.mux.HandleFunc("POST /api/seed", r.seedHandler.Seed)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
