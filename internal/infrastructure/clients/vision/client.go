package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
	"github.com/relievo/restroom-finder/backend/pkg/config"
)

const (
	defaultBaseURL = "https://vision.googleapis.com/v1"
	visionScope    = "https://www.googleapis.com/auth/cloud-vision"
	maxLabels      = 50
)

// Client calls the Google Cloud Vision REST API for label detection.
// It implements providers.LabelDetector.
type Client struct {
	baseURL     string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

type serviceAccount struct {
	Type                string `json:"type"`
	ProjectID           string `json:"project_id"`
	PrivateKeyID        string `json:"private_key_id"`
	PrivateKey          string `json:"private_key"`
	ClientEmail         string `json:"client_email"`
	ClientID            string `json:"client_id"`
	AuthURI             string `json:"auth_uri"`
	TokenURI            string `json:"token_uri"`
	AuthProviderCertURL string `json:"auth_provider_x509_cert_url"`
	ClientCertURL       string `json:"client_x509_cert_url"`
}

// NewClient assembles a service account from the individual credential
// fields and builds an authenticated Vision API client. It fails when any
// required credential field is absent; callers should treat that as the
// service being unconfigured rather than broken.
func NewClient(cfg *config.VisionConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("vision config is required")
	}
	if missing := cfg.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("missing vision credential fields: %v", missing)
	}

	credentials, err := json.Marshal(serviceAccount{
		Type:                "service_account",
		ProjectID:           cfg.ProjectID,
		PrivateKeyID:        cfg.PrivateKeyID,
		PrivateKey:          cfg.NormalizedPrivateKey(),
		ClientEmail:         cfg.ClientEmail,
		ClientID:            cfg.ClientID,
		AuthURI:             "https://accounts.google.com/o/oauth2/auth",
		TokenURI:            "https://oauth2.googleapis.com/token",
		AuthProviderCertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientCertURL:       cfg.ClientCertURL,
	})
	if err != nil {
		return nil, err
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials, visionScope)
	if err != nil {
		return nil, fmt.Errorf("failed to build vision credentials: %w", err)
	}

	return &Client{
		baseURL:     defaultBaseURL,
		tokenSource: jwtConfig.TokenSource(context.Background()),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageContent   `json:"image"`
	Features []featureQuery `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type featureQuery struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type annotateResponse struct {
	Responses []imageResponse `json:"responses"`
}

type imageResponse struct {
	LabelAnnotations []labelAnnotation `json:"labelAnnotations"`
	Error            *statusError      `json:"error"`
}

type labelAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type statusError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DetectLabels runs label detection on a single image and returns the
// detected labels with their confidence scores.
func (c *Client) DetectLabels(ctx context.Context, image []byte) ([]providers.ImageLabel, error) {
	if len(image) == 0 {
		return nil, errors.New("image content is empty")
	}

	body, err := json.Marshal(annotateRequest{
		Requests: []imageRequest{{
			Image:    imageContent{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []featureQuery{{Type: "LABEL_DETECTION", MaxResults: maxLabels}},
		}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images:annotate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain vision access token: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("vision request failed with status %d: %s", resp.StatusCode, payload)
	}

	var parsed annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}
	if len(parsed.Responses) == 0 {
		return nil, errors.New("vision response is empty")
	}
	if apiErr := parsed.Responses[0].Error; apiErr != nil {
		return nil, fmt.Errorf("vision annotation failed: %s (code %d)", apiErr.Message, apiErr.Code)
	}

	annotations := parsed.Responses[0].LabelAnnotations
	labels := make([]providers.ImageLabel, 0, len(annotations))
	for _, annotation := range annotations {
		labels = append(labels, providers.ImageLabel{
			Description: annotation.Description,
			Score:       annotation.Score,
		})
	}
	return labels, nil
}
