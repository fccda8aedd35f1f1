package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	"github.com/relievo/restroom-finder/backend/internal/domain/repositories"
	"github.com/relievo/restroom-finder/backend/internal/infrastructure/clients/openai"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

const (
	// labelBatchSize bounds how many candidate labels go into one
	// zero-shot classification call.
	labelBatchSize = 10

	// scoreFloor is the minimum classifier confidence for a label to
	// appear in the result.
	scoreFloor = 0.4

	// topLabels caps how many labels each polarity reports.
	topLabels = 5
)

// CommentAnalysisService derives pros and cons from review comments using
// either the zero-shot classifier or the generative summarizer. Both
// providers are optional; operations fail with a configuration error when
// their provider is absent.
type CommentAnalysisService struct {
	classifier    providers.CommentClassifier
	summarizer    providers.CommentSummarizer
	analyticsRepo repositories.AnalyticsRepository
	eventBus      providers.EventBus
}

// NewCommentAnalysisService creates a new comment analysis service
func NewCommentAnalysisService(
	classifier providers.CommentClassifier,
	summarizer providers.CommentSummarizer,
	analyticsRepo repositories.AnalyticsRepository,
) *CommentAnalysisService {
	return &CommentAnalysisService{
		classifier:    classifier,
		summarizer:    summarizer,
		analyticsRepo: analyticsRepo,
	}
}

// SetEventBus enables change event publishing for snapshot updates. Without
// a bus, snapshots still persist; downstream cache invalidation just never
// triggers.
func (s *CommentAnalysisService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// Classify runs zero-shot classification over the comments and returns the
// top-scoring pro and con labels. When restroomID is non-empty the result
// is also persisted as that restroom's analytics snapshot.
func (s *CommentAnalysisService) Classify(ctx context.Context, comments []string, restroomID string) (*entities.CommentTags, error) {
	if len(comments) == 0 {
		return nil, apperrors.NewValidationError("comments must be a non-empty array")
	}
	if s.classifier == nil {
		return nil, apperrors.NewConfigurationError("comment classifier is not configured")
	}

	// All comments are classified as one combined text.
	combined := strings.Join(comments, ". ")

	var (
		mu   sync.Mutex
		pros []entities.LabelScore
		cons []entities.LabelScore
	)

	group, groupCtx := errgroup.WithContext(ctx)

	for _, batch := range chunkLabels(prosLabels, labelBatchSize) {
		group.Go(func() error {
			scores, err := s.classifier.ClassifyBatch(groupCtx, combined, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			pros = append(pros, scores...)
			mu.Unlock()
			return nil
		})
	}

	for _, batch := range chunkLabels(consLabels, labelBatchSize) {
		group.Go(func() error {
			scores, err := s.classifier.ClassifyBatch(groupCtx, combined, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			cons = append(cons, scores...)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, apperrors.NewExternalError("comment classification failed", err)
	}

	tags := &entities.CommentTags{
		Pros: selectTopLabels(pros),
		Cons: selectTopLabels(cons),
	}

	if restroomID != "" {
		s.persistSnapshot(ctx, restroomID, labelNames(tags.Pros), labelNames(tags.Cons), nil)
	}

	return tags, nil
}

// Summarize asks the generative model for permanent pros and cons and
// parses its bulleted response. When restroomID is non-empty the result is
// also persisted as that restroom's analytics snapshot.
func (s *CommentAnalysisService) Summarize(ctx context.Context, comments []string, restroomID string) (*entities.CommentSummary, error) {
	if len(comments) == 0 {
		return nil, apperrors.NewValidationError("comments must be a non-empty array")
	}
	if s.summarizer == nil {
		return nil, apperrors.NewConfigurationError("comment summarizer is not configured")
	}

	response, err := s.summarizer.Complete(ctx, openai.SummarizerSystemPrompt, openai.BuildSummarizerPrompt(comments))
	if err != nil {
		return nil, apperrors.NewExternalError("comment summarization failed", err)
	}

	pros, cons := ParseProsCons(response)
	summary := &entities.CommentSummary{
		Pros:        pros,
		Cons:        cons,
		RawResponse: response,
	}

	if restroomID != "" {
		s.persistSnapshot(ctx, restroomID, pros, cons, nil)
	}

	return summary, nil
}

// persistSnapshot updates the restroom's analytics snapshot with new pros
// and cons (or detected features), preserving whichever fields the caller
// passes as nil. Persistence failures are logged, not returned: the
// analysis result is still valid.
func (s *CommentAnalysisService) persistSnapshot(ctx context.Context, restroomID string, pros, cons, features []string) {
	if s.analyticsRepo == nil {
		return
	}

	snapshot, err := s.analyticsRepo.GetByRestroomID(ctx, restroomID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			log.Warn().Err(err).Str("restroom_id", restroomID).Msg("failed to load analytics snapshot")
			return
		}
		snapshot = &entities.Analytics{
			ID:               uuid.New().String(),
			RestroomID:       restroomID,
			Pros:             []string{},
			Cons:             []string{},
			DetectedFeatures: []string{},
		}
	}

	if pros != nil {
		snapshot.Pros = pros
	}
	if cons != nil {
		snapshot.Cons = cons
	}
	if features != nil {
		snapshot.DetectedFeatures = features
	}

	if err := s.analyticsRepo.Upsert(ctx, snapshot); err != nil {
		log.Warn().Err(err).Str("restroom_id", restroomID).Msg("failed to persist analytics snapshot")
		return
	}

	if s.eventBus != nil {
		event := entities.NewRestroomEvent(restroomID, entities.RestroomEventTypeAnalyticsUpdate, map[string]interface{}{
			"pros":     len(snapshot.Pros),
			"cons":     len(snapshot.Cons),
			"features": len(snapshot.DetectedFeatures),
		})
		// Invalidation is best-effort; publish failures never fail the write.
		_ = s.eventBus.Publish(ctx, providers.EventChannelRestroomUpdates, event)
	}
}

// selectTopLabels filters out labels below the confidence floor, sorts the
// rest by descending score and keeps the best few.
func selectTopLabels(scores []entities.LabelScore) []entities.LabelScore {
	kept := make([]entities.LabelScore, 0, len(scores))
	for _, score := range scores {
		if score.Score >= scoreFloor {
			kept = append(kept, score)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if len(kept) > topLabels {
		kept = kept[:topLabels]
	}
	return kept
}

func labelNames(scores []entities.LabelScore) []string {
	names := make([]string, 0, len(scores))
	for _, score := range scores {
		names = append(names, score.Label)
	}
	return names
}

var (
	bulletPrefix   = regexp.MustCompile(`^[-•*]\s*`)
	numberPrefix   = regexp.MustCompile(`^\d+\.\s*`)
	parenNumPrefix = regexp.MustCompile(`^\(\d+\)\s*`)
)

// ParseProsCons extracts pros and cons from a bulleted model response with
// "Pros:" and "Cons:" section headers. Bullet markers and list numbering
// are stripped from each item. Items appearing before any header are
// treated as pros.
func ParseProsCons(responseText string) (pros, cons []string) {
	pros = []string{}
	cons = []string{}

	inPros := false
	inCons := false

	for _, line := range strings.Split(responseText, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Pros:"):
			inPros, inCons = true, false
		case strings.HasPrefix(line, "Cons:"):
			inPros, inCons = false, true
		case line != "":
			item := strings.TrimSpace(parenNumPrefix.ReplaceAllString(
				numberPrefix.ReplaceAllString(
					bulletPrefix.ReplaceAllString(line, ""), ""), ""))
			if item == "" {
				continue
			}

			// An unlabeled first section is assumed to be pros.
			if !inPros && !inCons && len(pros) == 0 {
				inPros = true
			}

			if inPros {
				pros = append(pros, item)
			} else if inCons {
				cons = append(cons, item)
			}
		}
	}

	return pros, cons
}
