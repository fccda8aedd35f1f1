package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// RestroomService captures the restroom operations the handler depends on
type RestroomService interface {
	Create(ctx context.Context, restroom *entities.Restroom) error
	List(ctx context.Context) ([]*entities.Restroom, error)
	Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Restroom, error)
	GetDetail(ctx context.Context, id string) (*entities.RestroomDetail, error)
	UpdateMenstrualProducts(ctx context.Context, record *entities.MenstrualProductRecord) error
}

// RestroomHandler handles restroom-related HTTP requests
type RestroomHandler struct {
	service RestroomService
}

// NewRestroomHandler creates a new restroom handler
func NewRestroomHandler(service RestroomService) *RestroomHandler {
	return &RestroomHandler{
		service: service,
	}
}

type createRestroomRequest struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Hours    string   `json:"hours"`
	Images   []string `json:"images"`
	Features []string `json:"features"`
}

// ListRestrooms handles GET /api/restrooms
func (h *RestroomHandler) ListRestrooms(w http.ResponseWriter, r *http.Request) {
	restrooms, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"restrooms": restrooms,
		"count":     len(restrooms),
	})
}

// SearchRestrooms handles GET /api/restrooms/search
func (h *RestroomHandler) SearchRestrooms(w http.ResponseWriter, r *http.Request) {
	params := repositories.SearchParams{
		Query: r.URL.Query().Get("q"),
		Limit: 30,
	}

	restrooms, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"restrooms": restrooms,
		"count":     len(restrooms),
	})
}

// CreateRestroom handles POST /api/restrooms
func (h *RestroomHandler) CreateRestroom(w http.ResponseWriter, r *http.Request) {
	var payload createRestroomRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	restroom := &entities.Restroom{
		Name:     payload.Name,
		Address:  payload.Address,
		Hours:    payload.Hours,
		Images:   payload.Images,
		Features: payload.Features,
	}

	if err := h.service.Create(r.Context(), restroom); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      restroom.ID,
	})
}

// GetRestroom handles GET /api/restrooms/{id}
func (h *RestroomHandler) GetRestroom(w http.ResponseWriter, r *http.Request) {
	restroomID := r.PathValue("id")
	if restroomID == "" {
		respondWithError(w, http.StatusBadRequest, "restroom ID is required")
		return
	}

	detail, err := h.service.GetDetail(r.Context(), restroomID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

type menstrualProductsRequest struct {
	Available     bool      `json:"available"`
	DispenserType string    `json:"dispenserType"`
	Images        []string  `json:"images"`
	RestockDate   time.Time `json:"restockDate"`
}

// UpdateMenstrualProducts handles PUT /api/restrooms/{id}/menstrual-products
func (h *RestroomHandler) UpdateMenstrualProducts(w http.ResponseWriter, r *http.Request) {
	restroomID := r.PathValue("id")
	if restroomID == "" {
		respondWithError(w, http.StatusBadRequest, "restroom ID is required")
		return
	}

	var payload menstrualProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	record := &entities.MenstrualProductRecord{
		RestroomID:    restroomID,
		Available:     payload.Available,
		DispenserType: payload.DispenserType,
		Images:        payload.Images,
		RestockDate:   payload.RestockDate,
	}

	if err := h.service.UpdateMenstrualProducts(r.Context(), record); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps application error types onto HTTP status codes.
// Internal and external failures are reported without their underlying
// detail.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, appErr.Message)
	case apperrors.ErrorTypeConfiguration:
		respondWithError(w, http.StatusInternalServerError, appErr.Message)
	case apperrors.ErrorTypeUnavailable:
		respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
