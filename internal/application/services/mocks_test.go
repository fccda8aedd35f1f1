package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
)

// Mocks

type MockRestroomRepo struct {
	mock.Mock
}

func (m *MockRestroomRepo) Create(ctx context.Context, restroom *entities.Restroom) error {
	args := m.Called(ctx, restroom)
	return args.Error(0)
}

func (m *MockRestroomRepo) GetByID(ctx context.Context, id string) (*entities.Restroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Restroom), args.Error(1)
}

func (m *MockRestroomRepo) List(ctx context.Context) ([]*entities.Restroom, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Restroom), args.Error(1)
}

type MockSearchRepo struct {
	mock.Mock
}

func (m *MockSearchRepo) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSearchRepo) Index(ctx context.Context, restroom *entities.Restroom) error {
	args := m.Called(ctx, restroom)
	return args.Error(0)
}

func (m *MockSearchRepo) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Restroom, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Restroom), args.Error(1)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepo) ListByRestroomID(ctx context.Context, restroomID string) ([]*entities.Review, error) {
	args := m.Called(ctx, restroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewRepo) IncrementVote(ctx context.Context, reviewID string, helpful bool) error {
	args := m.Called(ctx, reviewID, helpful)
	return args.Error(0)
}

type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) GetByRestroomID(ctx context.Context, restroomID string) (*entities.Analytics, error) {
	args := m.Called(ctx, restroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Analytics), args.Error(1)
}

func (m *MockAnalyticsRepo) Upsert(ctx context.Context, analytics *entities.Analytics) error {
	args := m.Called(ctx, analytics)
	return args.Error(0)
}

type MockMenstrualRepo struct {
	mock.Mock
}

func (m *MockMenstrualRepo) GetByRestroomID(ctx context.Context, restroomID string) (*entities.MenstrualProductRecord, error) {
	args := m.Called(ctx, restroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MenstrualProductRecord), args.Error(1)
}

func (m *MockMenstrualRepo) Upsert(ctx context.Context, record *entities.MenstrualProductRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.RestroomEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.RestroomEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.RestroomEvent), args.Error(1)
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) ClassifyBatch(ctx context.Context, text string, candidateLabels []string) ([]entities.LabelScore, error) {
	args := m.Called(ctx, text, candidateLabels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.LabelScore), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

type MockLabelDetector struct {
	mock.Mock
}

func (m *MockLabelDetector) DetectLabels(ctx context.Context, image []byte) ([]providers.ImageLabel, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]providers.ImageLabel), args.Error(1)
}
