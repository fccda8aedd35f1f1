package providers

import (
	"context"
)

// ImageLabel is one label returned by the remote vision service for an
// image, with its detection confidence in [0,1].
type ImageLabel struct {
	Description string
	Score       float64
}

// LabelDetector defines the interface for remote image label detection.
type LabelDetector interface {
	// DetectLabels annotates one image and returns its unordered labels
	DetectLabels(ctx context.Context, image []byte) ([]ImageLabel, error)
}
