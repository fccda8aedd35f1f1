package handlers

import (
	"context"
	"net/http"
)

// SeedService captures the seeding operation the handler depends on
type SeedService interface {
	Seed(ctx context.Context) error
}

// SeedHandler exposes the demo data seeder over HTTP
type SeedHandler struct {
	service SeedService
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(service SeedService) *SeedHandler {
	return &SeedHandler{
		service: service,
	}
}

// Seed handles POST /api/seed
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Seed(r.Context()); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "database seeded",
	})
}
