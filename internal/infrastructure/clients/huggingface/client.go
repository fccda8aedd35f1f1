package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/pkg/config"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Client calls the HuggingFace inference API for zero-shot multi-label
// classification. It implements providers.CommentClassifier.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new HuggingFace client.
func NewClient(cfg *config.HuggingFaceConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("huggingface api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "facebook/bart-large-mnli"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// ClassifyBatch re-ranks one batch of candidate labels against the text and
// returns each label with its confidence score.
func (c *Client) ClassifyBatch(ctx context.Context, text string, candidateLabels []string) ([]entities.LabelScore, error) {
	body, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: candidateLabels},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("huggingface request failed with status %d: %s", resp.StatusCode, payload)
	}

	var parsed classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse huggingface response: %w", err)
	}

	if len(parsed.Labels) != len(parsed.Scores) {
		return nil, fmt.Errorf("huggingface response has %d labels but %d scores", len(parsed.Labels), len(parsed.Scores))
	}

	scores := make([]entities.LabelScore, 0, len(parsed.Labels))
	for i, label := range parsed.Labels {
		scores = append(scores, entities.LabelScore{Label: label, Score: parsed.Scores[i]})
	}
	return scores, nil
}
