package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

func TestClassify_RejectsEmptyComments(t *testing.T) {
	service := NewCommentAnalysisService(new(MockClassifier), nil, nil)

	_, err := service.Classify(context.Background(), nil, "")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestClassify_MissingClassifier(t *testing.T) {
	service := NewCommentAnalysisService(nil, nil, nil)

	_, err := service.Classify(context.Background(), []string{"clean"}, "")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, appErr.Type)
}

func TestClassify_FiltersSortsAndCaps(t *testing.T) {
	classifier := new(MockClassifier)
	matchBatch := func(first string) interface{} {
		return mock.MatchedBy(func(labels []string) bool {
			return len(labels) > 0 && labels[0] == first
		})
	}

	// Comments are combined into one text before classification. Each pros
	// batch reports strong labels plus noise below the floor; cons batches
	// report nothing useful.
	combined := "Clean and bright. Easy access"
	classifier.On("ClassifyBatch", mock.Anything, combined, matchBatch("clean")).
		Return([]entities.LabelScore{
			{Label: "clean", Score: 0.91}, {Label: "neat", Score: 0.2}, {Label: "well-lit", Score: 0.58},
		}, nil)
	classifier.On("ClassifyBatch", mock.Anything, combined, matchBatch("bright")).
		Return([]entities.LabelScore{
			{Label: "bright", Score: 0.55}, {Label: "accessible", Score: 0.97},
		}, nil)
	classifier.On("ClassifyBatch", mock.Anything, combined, matchBatch("user-friendly")).
		Return([]entities.LabelScore{
			{Label: "user-friendly", Score: 0.62}, {Label: "spacious", Score: 0.71},
		}, nil)
	classifier.On("ClassifyBatch", mock.Anything, combined, mock.MatchedBy(func(labels []string) bool {
		return len(labels) > 0 && (labels[0] == "dirty" || labels[0] == "poorly lit" || labels[0] == "difficult for the disabled")
	})).Return([]entities.LabelScore{{Label: "dirty", Score: 0.1}}, nil)

	service := NewCommentAnalysisService(classifier, nil, nil)

	tags, err := service.Classify(context.Background(), []string{"Clean and bright", "Easy access"}, "")
	require.NoError(t, err)

	// Below-floor labels are dropped, the rest sorted by descending score
	// and capped at five.
	require.Len(t, tags.Pros, 5)
	assert.Equal(t, "accessible", tags.Pros[0].Label)
	assert.Equal(t, "clean", tags.Pros[1].Label)
	assert.Equal(t, "spacious", tags.Pros[2].Label)
	for i := 1; i < len(tags.Pros); i++ {
		assert.GreaterOrEqual(t, tags.Pros[i-1].Score, tags.Pros[i].Score)
	}
	for _, score := range tags.Pros {
		assert.GreaterOrEqual(t, score.Score, 0.4)
	}
	assert.Empty(t, tags.Cons)
}

func TestClassify_BatchErrorFailsWhole(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("ClassifyBatch", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("model loading"))

	service := NewCommentAnalysisService(classifier, nil, nil)

	_, err := service.Classify(context.Background(), []string{"anything"}, "")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}

func TestClassify_PersistsSnapshot(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("ClassifyBatch", mock.Anything, mock.Anything, mock.Anything).
		Return([]entities.LabelScore{{Label: "clean", Score: 0.8}}, nil)

	analyticsRepo := new(MockAnalyticsRepo)
	analyticsRepo.On("GetByRestroomID", mock.Anything, "r-1").
		Return(nil, apperrors.NewNotFoundError("missing"))
	analyticsRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(snapshot *entities.Analytics) bool {
		return snapshot.RestroomID == "r-1" && len(snapshot.Pros) > 0 && snapshot.ID != ""
	})).Return(nil)

	service := NewCommentAnalysisService(classifier, nil, analyticsRepo)

	_, err := service.Classify(context.Background(), []string{"clean"}, "r-1")
	require.NoError(t, err)
	analyticsRepo.AssertExpectations(t)
}

func TestClassify_PublishesAnalyticsUpdateEvent(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("ClassifyBatch", mock.Anything, mock.Anything, mock.Anything).
		Return([]entities.LabelScore{{Label: "clean", Score: 0.8}}, nil)

	analyticsRepo := new(MockAnalyticsRepo)
	analyticsRepo.On("GetByRestroomID", mock.Anything, "r-1").
		Return(nil, apperrors.NewNotFoundError("missing"))
	analyticsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	eventBus := new(MockEventBus)
	eventBus.On("Publish", mock.Anything, providers.EventChannelRestroomUpdates, mock.MatchedBy(func(event *entities.RestroomEvent) bool {
		return event.RestroomID == "r-1" && event.EventType == entities.RestroomEventTypeAnalyticsUpdate
	})).Return(nil).Once()

	service := NewCommentAnalysisService(classifier, nil, analyticsRepo)
	service.SetEventBus(eventBus)

	_, err := service.Classify(context.Background(), []string{"clean"}, "r-1")
	require.NoError(t, err)
	eventBus.AssertExpectations(t)
}

func TestClassify_NoEventWithoutPersistence(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("ClassifyBatch", mock.Anything, mock.Anything, mock.Anything).
		Return([]entities.LabelScore{{Label: "clean", Score: 0.8}}, nil)

	eventBus := new(MockEventBus)

	service := NewCommentAnalysisService(classifier, nil, nil)
	service.SetEventBus(eventBus)

	// Without a restroom ID there is no snapshot write and nothing to announce.
	_, err := service.Classify(context.Background(), []string{"clean"}, "")
	require.NoError(t, err)
	eventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummarize_MissingSummarizer(t *testing.T) {
	service := NewCommentAnalysisService(nil, nil, nil)

	_, err := service.Summarize(context.Background(), []string{"clean"}, "")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, appErr.Type)
}

func TestSummarize_ParsesResponse(t *testing.T) {
	summarizer := new(MockSummarizer)
	summarizer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("Pros:\n- Clean\n- Spacious\n\nCons:\n- Poor temperature control", nil)

	service := NewCommentAnalysisService(nil, summarizer, nil)

	summary, err := service.Summarize(context.Background(), []string{"Clean but cold"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean", "Spacious"}, summary.Pros)
	assert.Equal(t, []string{"Poor temperature control"}, summary.Cons)
	assert.Contains(t, summary.RawResponse, "Pros:")
}

func TestParseProsCons(t *testing.T) {
	tests := []struct {
		name     string
		response string
		pros     []string
		cons     []string
	}{
		{
			name:     "sectioned bullets",
			response: "Pros:\n- Clean\n- Well-lit\n\nCons:\n- Cramped",
			pros:     []string{"Clean", "Well-lit"},
			cons:     []string{"Cramped"},
		},
		{
			name:     "numbered items",
			response: "Pros:\n1. Clean\n2. Modern\nCons:\n(1) Noisy",
			pros:     []string{"Clean", "Modern"},
			cons:     []string{"Noisy"},
		},
		{
			name:     "unmarked first section is pros",
			response: "- Clean\n- Tidy\nCons:\n- Dark",
			pros:     []string{"Clean", "Tidy"},
			cons:     []string{"Dark"},
		},
		{
			name:     "asterisk and dot bullets",
			response: "Pros:\n* Spacious\n• Fresh\nCons:\n* None",
			pros:     []string{"Spacious", "Fresh"},
			cons:     []string{"None"},
		},
		{
			name:     "empty response",
			response: "",
			pros:     []string{},
			cons:     []string{},
		},
		{
			name:     "only cons",
			response: "Cons:\n- Dirty",
			pros:     []string{},
			cons:     []string{"Dirty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pros, cons := ParseProsCons(tt.response)
			assert.Equal(t, tt.pros, pros)
			assert.Equal(t, tt.cons, cons)
		})
	}
}

func TestChunkLabels(t *testing.T) {
	chunks := chunkLabels(prosLabels, 10)
	assert.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10)
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	assert.Equal(t, len(prosLabels), total)
}
