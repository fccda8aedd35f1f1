package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

const maxImageUploadBytes = 32 << 20

// CommentAnalysisService captures the comment analysis operations the handler
// depends on
type CommentAnalysisService interface {
	Classify(ctx context.Context, comments []string, restroomID string) (*entities.CommentTags, error)
	Summarize(ctx context.Context, comments []string, restroomID string) (*entities.CommentSummary, error)
}

// ImageAnalysisService captures the image analysis operations the handler
// depends on
type ImageAnalysisService interface {
	Available() bool
	Analyze(ctx context.Context, images [][]byte, restroomID string) (*entities.ImageAnalysis, error)
}

// AnalysisHandler handles comment and image analysis HTTP requests
type AnalysisHandler struct {
	commentService CommentAnalysisService
	imageService   ImageAnalysisService
	visionMissing  []string
}

// NewAnalysisHandler creates a new analysis handler. visionMissing lists the
// environment variables that must be set before image analysis becomes
// available; it is empty when the vision client is configured.
func NewAnalysisHandler(commentService CommentAnalysisService, imageService ImageAnalysisService, visionMissing []string) *AnalysisHandler {
	return &AnalysisHandler{
		commentService: commentService,
		imageService:   imageService,
		visionMissing:  visionMissing,
	}
}

type analyzeCommentsRequest struct {
	Comments   []string `json:"comments"`
	RestroomID string   `json:"restroomId"`
}

// ClassifyComments handles POST /api/analysis/comments
func (h *AnalysisHandler) ClassifyComments(w http.ResponseWriter, r *http.Request) {
	var payload analyzeCommentsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	tags, err := h.commentService.Classify(r.Context(), payload.Comments, payload.RestroomID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tags)
}

// SummarizeComments handles POST /api/analysis/comments/generative
func (h *AnalysisHandler) SummarizeComments(w http.ResponseWriter, r *http.Request) {
	var payload analyzeCommentsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	summary, err := h.commentService.Summarize(r.Context(), payload.Comments, payload.RestroomID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// AnalyzeImages handles POST /api/analysis/images. Images arrive as a
// multipart form under the "images" field; an optional "restroomId" form
// value links the result to a stored analytics snapshot.
func (h *AnalysisHandler) AnalyzeImages(w http.ResponseWriter, r *http.Request) {
	if h.imageService == nil || !h.imageService.Available() {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"error":             "image analysis is not configured",
			"requiredVariables": h.visionMissing,
		})
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var images [][]byte
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "could not read uploaded image")
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "could not read uploaded image")
				return
			}
			images = append(images, data)
		}
	}

	if len(images) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one image is required")
		return
	}

	restroomID := r.FormValue("restroomId")

	analysis, err := h.imageService.Analyze(r.Context(), images, restroomID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeUnavailable {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"error":             appErr.Message,
				"requiredVariables": h.visionMissing,
			})
			return
		}
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analysis)
}
