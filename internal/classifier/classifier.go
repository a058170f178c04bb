// Package classifier is the boundary to the external ML headline
// classifier. The classifier is optional: a nil client means predictions are
// simply absent and verification proceeds without them.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sgribkov/newsvet/internal/model"
)

// Classifier produces a prediction for one piece of claim text.
type Classifier interface {
	Predict(ctx context.Context, text string) (*model.Prediction, error)
}

// HTTPClassifier talks to the classifier service over HTTP.
type HTTPClassifier struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClassifier creates a client for the service at baseURL. Returns nil
// when no base URL is configured, which callers treat as classifier absent.
func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClassifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends the text to the classifier and returns its prediction.
func (c *HTTPClassifier) Predict(ctx context.Context, text string) (*model.Prediction, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predict: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var prediction model.Prediction
	if err := json.Unmarshal(body, &prediction); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &prediction, nil
}
