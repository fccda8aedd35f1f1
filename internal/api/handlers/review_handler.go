package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
)

// ReviewService captures the review operations the handler depends on
type ReviewService interface {
	Create(ctx context.Context, review *entities.Review) error
	ListByRestroomID(ctx context.Context, restroomID string) ([]*entities.Review, error)
	Vote(ctx context.Context, reviewID string, helpful bool) error
}

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

type createReviewRequest struct {
	RestroomID    string `json:"restroomId"`
	UserName      string `json:"userName"`
	Rating        int    `json:"rating"`
	Cleanliness   int    `json:"cleanliness"`
	Accessibility int    `json:"accessibility"`
	Privacy       int    `json:"privacy"`
	Comment       string `json:"comment"`
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	restroomID := r.URL.Query().Get("restroomId")
	if restroomID == "" {
		respondWithError(w, http.StatusBadRequest, "restroomId query parameter is required")
		return
	}

	reviews, err := h.service.ListByRestroomID(r.Context(), restroomID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var payload createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review := &entities.Review{
		RestroomID:    payload.RestroomID,
		UserName:      payload.UserName,
		Rating:        payload.Rating,
		Cleanliness:   payload.Cleanliness,
		Accessibility: payload.Accessibility,
		Privacy:       payload.Privacy,
		Comment:       payload.Comment,
	}

	if err := h.service.Create(r.Context(), review); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

type voteRequest struct {
	Helpful bool `json:"helpful"`
}

// VoteReview handles POST /api/reviews/{id}/vote
func (h *ReviewHandler) VoteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")
	if reviewID == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	var payload voteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Vote(r.Context(), reviewID, payload.Helpful); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
