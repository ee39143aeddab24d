package tui

import (
	"podcastpulse/types"
	"podcastpulse/viewer"
)

// Messages for the tea program

// OutcomeMsg carries a summarize outcome back into Update
type OutcomeMsg struct {
	Event viewer.Event
}

// HealthMsg is the result of the start-up API probe
type HealthMsg struct {
	OK  bool
	Err error
}

// HistoryMsg carries the API's list of summarized videos, newest first
type HistoryMsg struct {
	Entries []types.HistoryEntry
	Err     error
}

// FeedbackSentMsg is returned after the feedback handler ran
type FeedbackSentMsg struct {
	Err error
}
