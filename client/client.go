package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"podcastpulse/config"
	"podcastpulse/types"
)

// Summarizer is what the front ends need from the summarization API
type Summarizer interface {
	Summarize(ctx context.Context, youtubeURL string) (*types.SummarizeResponse, error)
}

// HistoryLister is implemented by clients that can list summarized videos
type HistoryLister interface {
	History(ctx context.Context) ([]types.HistoryEntry, error)
}

// SummarizerClient is a thin HTTP client for the summarization API
type SummarizerClient struct {
	endpoint   string
	healthURL  string
	historyURL string
	httpClient *http.Client
}

// NewSummarizerClient creates a client for cfg.Endpoint. A zero cfg.Timeout
// leaves requests unbounded; only the caller's context can cancel them.
func NewSummarizerClient(cfg config.APIConfig) *SummarizerClient {
	return &SummarizerClient{
		endpoint:   cfg.Endpoint,
		healthURL:  resolveSiblingURL(cfg.Endpoint, cfg.HealthEndpoint, config.HealthPath),
		historyURL: resolveSiblingURL(cfg.Endpoint, cfg.HistoryEndpoint, config.HistoryPath),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Endpoint returns the URL summarize requests are sent to
func (c *SummarizerClient) Endpoint() string { return c.endpoint }

// Summarize POSTs {"youtube_url": youtubeURL} and returns the decoded body.
// It sends exactly one request and never retries.
func (c *SummarizerClient) Summarize(ctx context.Context, youtubeURL string) (*types.SummarizeResponse, error) {
	payload, err := json.Marshal(types.SummarizeRequest{YouTubeURL: youtubeURL})
	if err != nil {
		return nil, &TransportError{Op: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Op: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	// The body is parsed before the status is looked at, so a non-JSON error
	// page surfaces as a parse failure rather than a generic message.
	var body types.SummarizeResponse
	if err := decodeObject(resp.Body, &body); err != nil {
		return nil, &TransportError{Op: "failed to decode response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || body.Error != "" {
		msg := body.Error
		if msg == "" {
			msg = body.DetailText()
		}
		if msg == "" {
			msg = config.GenericErrorMessage
		}
		return nil, &ApplicationError{Status: resp.StatusCode, Message: msg}
	}

	return &body, nil
}

// Health probes the API's /health route. It is advisory and bounded by
// config.HealthTimeout regardless of the summarize timeout.
func (c *SummarizerClient) Health(ctx context.Context) (bool, error) {
	if c.healthURL == "" {
		return false, fmt.Errorf("no health URL for endpoint %q", c.endpoint)
	}

	ctx, cancel := context.WithTimeout(ctx, config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to get health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var health types.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return health.OK, nil
}

// History lists the videos the API has summarized, newest first. It is bounded
// by config.HistoryTimeout.
func (c *SummarizerClient) History(ctx context.Context) ([]types.HistoryEntry, error) {
	if c.historyURL == "" {
		return nil, &TransportError{Err: fmt.Errorf("no history URL for endpoint %q", c.endpoint)}
	}

	ctx, cancel := context.WithTimeout(ctx, config.HistoryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.historyURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "failed to create request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var body types.HistoryResponse
	if err := decodeObject(resp.Body, &body); err != nil {
		return nil, &TransportError{Op: "failed to decode response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ApplicationError{Status: resp.StatusCode, Message: config.GenericErrorMessage}
	}

	// The API returns rows in insertion order
	entries := make([]types.HistoryEntry, 0, len(body.History))
	for i := len(body.History) - 1; i >= 0; i-- {
		entries = append(entries, body.History[i])
	}
	return entries, nil
}

// Close releases idle keep-alive connections
func (c *SummarizerClient) Close() {
	c.httpClient.CloseIdleConnections()
}

// decodeObject decodes a body that must be exactly one JSON object
func decodeObject(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if len(raw) == 0 || raw[0] != '{' {
		return fmt.Errorf("expected a JSON object, got %.20s", raw)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON object")
	}
	return json.Unmarshal(raw, v)
}

// resolveSiblingURL uses override when set, else swaps the endpoint's path for path
func resolveSiblingURL(endpoint, override, path string) string {
	if override != "" {
		return override
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return ""
	}
	u.Path = path
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
