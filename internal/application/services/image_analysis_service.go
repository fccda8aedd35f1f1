package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	apperrors "github.com/relievo/restroom-finder/backend/pkg/errors"
)

// ImageAnalysisService maps remote image label detections onto the fixed
// restroom feature vocabulary. The detector is optional; analysis fails
// with an unavailable error when it is absent.
type ImageAnalysisService struct {
	detector  providers.LabelDetector
	persister *CommentAnalysisService
}

// NewImageAnalysisService creates a new image analysis service. The comment
// analysis service is borrowed for snapshot persistence so both analyzers
// write through one code path.
func NewImageAnalysisService(
	detector providers.LabelDetector,
	persister *CommentAnalysisService,
) *ImageAnalysisService {
	return &ImageAnalysisService{
		detector:  detector,
		persister: persister,
	}
}

// Available reports whether the label detector is configured.
func (s *ImageAnalysisService) Available() bool {
	return s.detector != nil
}

// Analyze runs label detection on each image, maps the labels onto the
// feature vocabulary and combines the per-image results. A feature is
// present when any image shows it; its confidence is the maximum across
// images. When restroomID is non-empty, detected features are persisted in
// that restroom's analytics snapshot.
func (s *ImageAnalysisService) Analyze(ctx context.Context, images [][]byte, restroomID string) (*entities.ImageAnalysis, error) {
	if !s.Available() {
		return nil, apperrors.NewUnavailableError("image label detection is not configured")
	}
	if len(images) == 0 {
		return nil, apperrors.NewValidationError("no images provided")
	}

	// Each goroutine writes only its own slot.
	results := make([]*entities.ImageAnalysis, len(images))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, image := range images {
		group.Go(func() error {
			labels, err := s.detector.DetectLabels(groupCtx, image)
			if err != nil {
				return err
			}
			results[i] = matchFeatures(labels)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, apperrors.NewExternalError("image analysis failed", err)
	}

	combined := combineAnalyses(results)

	if restroomID != "" && s.persister != nil {
		s.persister.persistSnapshot(ctx, restroomID, nil, nil, combined.DetectedFeatures)
	}

	return combined, nil
}

// matchFeatures maps one image's detected labels onto the feature
// vocabulary. Each feature keeps the highest confidence among the labels
// that matched it. Clean/Dirty and Good Lighting/Poor Lighting are
// mutually exclusive per image: when both sides match, the lower-scoring
// one is cleared.
func matchFeatures(labels []providers.ImageLabel) *entities.ImageAnalysis {
	analysis := newImageAnalysis()

	for _, label := range labels {
		description := strings.ToLower(label.Description)
		for _, feature := range restroomFeatures {
			for _, keyword := range feature.Keywords {
				if strings.Contains(description, keyword) {
					analysis.Features[feature.Name] = true
					if label.Score > analysis.Confidence[feature.Name] {
						analysis.Confidence[feature.Name] = label.Score
					}
					break
				}
			}
		}
	}

	resolveExclusive(analysis, "Clean", "Dirty")
	resolveExclusive(analysis, "Good Lighting", "Poor Lighting")

	analysis.DetectedFeatures = detectedFeatureNames(analysis.Features)
	return analysis
}

// resolveExclusive keeps whichever of two conflicting features scored
// higher, preferring the first on a tie.
func resolveExclusive(analysis *entities.ImageAnalysis, first, second string) {
	if !analysis.Features[first] || !analysis.Features[second] {
		return
	}
	if analysis.Confidence[first] >= analysis.Confidence[second] {
		analysis.Features[second] = false
		analysis.Confidence[second] = 0
	} else {
		analysis.Features[first] = false
		analysis.Confidence[first] = 0
	}
}

// combineAnalyses merges per-image results: a feature is present when any
// image has it, with the maximum confidence across images. Exclusivity is
// deliberately not re-applied after combining; different images may
// legitimately disagree.
func combineAnalyses(results []*entities.ImageAnalysis) *entities.ImageAnalysis {
	combined := newImageAnalysis()

	for _, result := range results {
		if result == nil {
			continue
		}
		for name, present := range result.Features {
			combined.Features[name] = combined.Features[name] || present
			if result.Confidence[name] > combined.Confidence[name] {
				combined.Confidence[name] = result.Confidence[name]
			}
		}
	}

	combined.DetectedFeatures = detectedFeatureNames(combined.Features)
	return combined
}

func newImageAnalysis() *entities.ImageAnalysis {
	analysis := &entities.ImageAnalysis{
		Features:         make(map[string]bool, len(restroomFeatures)),
		Confidence:       make(map[string]float64, len(restroomFeatures)),
		DetectedFeatures: []string{},
	}
	for _, feature := range restroomFeatures {
		analysis.Features[feature.Name] = false
		analysis.Confidence[feature.Name] = 0
	}
	return analysis
}

// detectedFeatureNames lists the present features in vocabulary order.
func detectedFeatureNames(features map[string]bool) []string {
	names := []string{}
	for _, feature := range restroomFeatures {
		if features[feature.Name] {
			names = append(names, feature.Name)
		}
	}
	return names
}
