package types

import (
	"encoding/json"
	"strings"
)

// Topic is one discussion topic extracted from a video
type Topic struct {
	Name         string   `json:"name"`
	QuotesAdvice []string `json:"quotes_advice"`
}

// Summary is the structured result the summarization API returns for a video.
// Every field is optional on the wire.
type Summary struct {
	Title        string   `json:"title,omitempty"`
	Topics       []Topic  `json:"topics,omitempty"`
	Resources    []string `json:"resources,omitempty"`
	KeyQuestions []string `json:"key_questions,omitempty"`
}

// SummarizeRequest is the body POSTed to the summarization endpoint
type SummarizeRequest struct {
	YouTubeURL string `json:"youtube_url"`
}

// SummarizeResponse covers both the success and the failure body shapes.
// A failure is signalled by Error (or Detail) being set, or by the HTTP status.
type SummarizeResponse struct {
	Message string   `json:"message,omitempty"`
	VideoID string   `json:"video_id,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
	Error   string   `json:"error,omitempty"`
	// Detail is the FastAPI HTTPException field; it may be a string or a list
	Detail json.RawMessage `json:"detail,omitempty"`
}

// DetailText returns Detail as display text. String details are unquoted,
// anything else is returned as compact JSON.
func (r *SummarizeResponse) DetailText() string {
	if len(r.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Detail, &s); err == nil {
		return s
	}
	raw := strings.TrimSpace(string(r.Detail))
	if raw == "null" {
		return ""
	}
	return raw
}

// HealthResponse is the body of the API's GET /health
type HealthResponse struct {
	OK bool `json:"ok"`
}

// HistoryEntry is one previously summarized video
type HistoryEntry struct {
	VideoID   string    `json:"video_id"`
	Timestamp Timestamp `json:"timestamp"`
}

// HistoryResponse is the body of the API's GET /history
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// Timestamp keeps a history timestamp as display text. The API stores
// whatever its database returned, so both strings and numbers are accepted.
type Timestamp string

// UnmarshalJSON accepts a JSON string or number. null leaves it empty.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Timestamp(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Timestamp(n.String())
	return nil
}
