package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relievo/restroom-finder/backend/internal/api/handlers"
	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

type stubCommentAnalysisService struct {
	tags    *entities.CommentTags
	summary *entities.CommentSummary
	err     error

	lastComments   []string
	lastRestroomID string
}

func (s *stubCommentAnalysisService) Classify(ctx context.Context, comments []string, restroomID string) (*entities.CommentTags, error) {
	s.lastComments = comments
	s.lastRestroomID = restroomID
	return s.tags, s.err
}

func (s *stubCommentAnalysisService) Summarize(ctx context.Context, comments []string, restroomID string) (*entities.CommentSummary, error) {
	s.lastComments = comments
	s.lastRestroomID = restroomID
	return s.summary, s.err
}

type stubImageAnalysisService struct {
	available bool
	analysis  *entities.ImageAnalysis
	err       error

	lastImages     [][]byte
	lastRestroomID string
}

func (s *stubImageAnalysisService) Available() bool {
	return s.available
}

func (s *stubImageAnalysisService) Analyze(ctx context.Context, images [][]byte, restroomID string) (*entities.ImageAnalysis, error) {
	s.lastImages = images
	s.lastRestroomID = restroomID
	return s.analysis, s.err
}

func TestAnalysisHandler_ClassifyComments_Success(t *testing.T) {
	commentService := &stubCommentAnalysisService{
		tags: &entities.CommentTags{
			Pros: []entities.LabelScore{{Label: "clean", Score: 0.91}},
			Cons: []entities.LabelScore{},
		},
	}
	handler := handlers.NewAnalysisHandler(commentService, &stubImageAnalysisService{available: true}, nil)

	body := `{"comments":["Very clean and accessible!"],"restroomId":"r-1"}`
	req := httptest.NewRequest("POST", "/api/analysis/comments", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ClassifyComments(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Very clean and accessible!"}, commentService.lastComments)
	assert.Equal(t, "r-1", commentService.lastRestroomID)

	var response entities.CommentTags
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Pros, 1)
	assert.Equal(t, "clean", response.Pros[0].Label)
}

func TestAnalysisHandler_ClassifyComments_EmptyComments(t *testing.T) {
	commentService := &stubCommentAnalysisService{err: apperrors.NewValidationError("comments are required")}
	handler := handlers.NewAnalysisHandler(commentService, &stubImageAnalysisService{available: true}, nil)

	req := httptest.NewRequest("POST", "/api/analysis/comments", strings.NewReader(`{"comments":[]}`))
	w := httptest.NewRecorder()

	handler.ClassifyComments(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalysisHandler_ClassifyComments_Unconfigured(t *testing.T) {
	commentService := &stubCommentAnalysisService{err: apperrors.NewConfigurationError("comment classifier is not configured")}
	handler := handlers.NewAnalysisHandler(commentService, &stubImageAnalysisService{available: true}, nil)

	req := httptest.NewRequest("POST", "/api/analysis/comments", strings.NewReader(`{"comments":["nice"]}`))
	w := httptest.NewRecorder()

	handler.ClassifyComments(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAnalysisHandler_SummarizeComments_Success(t *testing.T) {
	commentService := &stubCommentAnalysisService{
		summary: &entities.CommentSummary{
			Pros: []string{"Clean"},
			Cons: []string{"Crowded"},
		},
	}
	handler := handlers.NewAnalysisHandler(commentService, &stubImageAnalysisService{available: true}, nil)

	body := `{"comments":["Clean but crowded"]}`
	req := httptest.NewRequest("POST", "/api/analysis/comments/generative", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SummarizeComments(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entities.CommentSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []string{"Clean"}, response.Pros)
	assert.Equal(t, []string{"Crowded"}, response.Cons)
}

func newImageUploadRequest(t *testing.T, restroomID string, images map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, data := range images {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if restroomID != "" {
		require.NoError(t, writer.WriteField("restroomId", restroomID))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/analysis/images", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalysisHandler_AnalyzeImages_Success(t *testing.T) {
	imageService := &stubImageAnalysisService{
		available: true,
		analysis: &entities.ImageAnalysis{
			Features:         map[string]bool{"Clean": true},
			Confidence:       map[string]float64{"Clean": 0.93},
			DetectedFeatures: []string{"Clean"},
		},
	}
	handler := handlers.NewAnalysisHandler(&stubCommentAnalysisService{}, imageService, nil)

	req := newImageUploadRequest(t, "r-1", map[string][]byte{"stall.jpg": []byte("fake-image-bytes")})
	w := httptest.NewRecorder()

	handler.AnalyzeImages(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, imageService.lastImages, 1)
	assert.Equal(t, []byte("fake-image-bytes"), imageService.lastImages[0])
	assert.Equal(t, "r-1", imageService.lastRestroomID)

	var response entities.ImageAnalysis
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []string{"Clean"}, response.DetectedFeatures)
}

func TestAnalysisHandler_AnalyzeImages_NoImages(t *testing.T) {
	handler := handlers.NewAnalysisHandler(&stubCommentAnalysisService{}, &stubImageAnalysisService{available: true}, nil)

	req := newImageUploadRequest(t, "", map[string][]byte{})
	w := httptest.NewRecorder()

	handler.AnalyzeImages(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalysisHandler_AnalyzeImages_Unavailable(t *testing.T) {
	missing := []string{"GOOGLE_CLOUD_PROJECT_ID", "GOOGLE_CLOUD_PRIVATE_KEY"}
	handler := handlers.NewAnalysisHandler(&stubCommentAnalysisService{}, &stubImageAnalysisService{available: false}, missing)

	req := newImageUploadRequest(t, "", map[string][]byte{"stall.jpg": []byte("bytes")})
	w := httptest.NewRecorder()

	handler.AnalyzeImages(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response struct {
		Error             string   `json:"error"`
		RequiredVariables []string `json:"requiredVariables"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, missing, response.RequiredVariables)
}

func TestAnalysisHandler_AnalyzeImages_DetectorError(t *testing.T) {
	imageService := &stubImageAnalysisService{
		available: true,
		err:       apperrors.NewExternalError("label detection failed", nil),
	}
	handler := handlers.NewAnalysisHandler(&stubCommentAnalysisService{}, imageService, nil)

	req := newImageUploadRequest(t, "", map[string][]byte{"stall.jpg": []byte("bytes")})
	w := httptest.NewRecorder()

	handler.AnalyzeImages(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSeedHandler_Seed(t *testing.T) {
	handler := handlers.NewSeedHandler(&stubSeedService{})

	req := httptest.NewRequest("POST", "/api/seed", nil)
	w := httptest.NewRecorder()

	handler.Seed(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

type stubSeedService struct {
	err error
}

func (s *stubSeedService) Seed(ctx context.Context) error {
	return s.err
}
