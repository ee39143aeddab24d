package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"podcastpulse/client"
	"podcastpulse/viewer"
)

// HealthChecker is implemented by clients that can probe the API
type HealthChecker interface {
	Health(ctx context.Context) (bool, error)
}

// summarize creates a command that sends one request and reports its outcome
func summarize(api client.Summarizer, seq uint64, url string) tea.Cmd {
	return func() tea.Msg {
		return OutcomeMsg{Event: viewer.Fetch(context.Background(), api, seq, url)}
	}
}

// checkHealth creates a command that probes the API once
func checkHealth(hc HealthChecker) tea.Cmd {
	return func() tea.Msg {
		ok, err := hc.Health(context.Background())
		return HealthMsg{OK: ok, Err: err}
	}
}

// fetchHistory creates a command that lists previously summarized videos
func fetchHistory(hl client.HistoryLister) tea.Cmd {
	return func() tea.Msg {
		entries, err := hl.History(context.Background())
		return HistoryMsg{Entries: entries, Err: err}
	}
}

// sendFeedback creates a command that hands text to the feedback handler
func sendFeedback(fb viewer.FeedbackHandler, text string) tea.Cmd {
	return func() tea.Msg {
		return FeedbackSentMsg{Err: fb.SubmitFeedback(context.Background(), text)}
	}
}
