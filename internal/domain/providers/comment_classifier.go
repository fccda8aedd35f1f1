package providers

import (
	"context"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
)

// CommentClassifier re-ranks a batch of candidate labels against free text.
// The remote zero-shot model bounds how many candidate labels it accepts per
// call, so callers chunk their vocabulary and invoke the classifier once per
// batch.
type CommentClassifier interface {
	// ClassifyBatch scores every candidate label in [0,1] for the given text
	ClassifyBatch(ctx context.Context, text string, candidateLabels []string) ([]entities.LabelScore, error)
}

// CommentSummarizer produces a free-text completion for an instruction
// prompt. The generative comment classifier parses its bulleted output into
// pros and cons.
type CommentSummarizer interface {
	// Complete sends the system and user prompts and returns the model's text
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
