package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"QuantWatch/internal/model"
)

// HTTPClassifier implements Classifier against a text-classification
// inference endpoint (a FinBERT-style service exposing POST /classify).
type HTTPClassifier struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPClassifier creates a classifier client with optional proxy support.
func NewHTTPClassifier(baseURL, apiKey, proxyURL string) *HTTPClassifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPClassifier{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *HTTPClassifier) Name() string { return "http" }

// Classify sends the texts for classification and returns one label per
// input text.
func (c *HTTPClassifier) Classify(ctx context.Context, texts []string) ([]model.SentimentLabel, error) {
	payload, err := json.Marshal(map[string][]string{"texts": texts})
	if err != nil {
		return nil, fmt.Errorf("marshal texts: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/classify", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classify: status %d, body: %s", resp.StatusCode, string(body))
	}

	var labels []model.SentimentLabel
	if err := json.NewDecoder(resp.Body).Decode(&labels); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	return labels, nil
}
