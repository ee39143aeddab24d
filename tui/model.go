package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"podcastpulse/client"
	"podcastpulse/types"
	"podcastpulse/viewer"
)

// Focus is the region receiving key presses
type Focus int

const (
	FocusURL Focus = iota
	FocusFeedback
	FocusSections
)

// Model is the terminal front end. All UI state lives in State and only
// changes through viewer.Reduce; the bubbles widgets mirror it for editing.
type Model struct {
	api      client.Summarizer
	feedback viewer.FeedbackHandler

	State viewer.State
	Focus Focus

	urlInput      textinput.Model
	feedbackInput textarea.Model
	spinner       spinner.Model

	// Upstream is the last health probe result, "" until it returns
	Upstream string
	// History lists recently summarized videos, newest first
	History []types.HistoryEntry
	width   int
}

// NewModel creates the model in the idle state with the URL input focused
func NewModel(api client.Summarizer, feedback viewer.FeedbackHandler, opts ...viewer.Option) Model {
	if feedback == nil {
		feedback = viewer.NoopFeedback{}
	}

	urlInput := textinput.New()
	urlInput.Placeholder = TextURLPlaceholder
	urlInput.CharLimit = 2048
	urlInput.Width = 60
	urlInput.Focus()

	feedbackInput := textarea.New()
	feedbackInput.Placeholder = TextFeedbackPlacehold
	feedbackInput.ShowLineNumbers = false
	feedbackInput.SetHeight(3)
	feedbackInput.SetWidth(60)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))

	return Model{
		api:           api,
		feedback:      feedback,
		State:         viewer.New(opts...),
		Focus:         FocusURL,
		urlInput:      urlInput,
		feedbackInput: feedbackInput,
		spinner:       spin,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if hc, ok := m.api.(HealthChecker); ok {
		cmds = append(cmds, checkHealth(hc))
	}
	if hl, ok := m.api.(client.HistoryLister); ok {
		cmds = append(cmds, fetchHistory(hl))
	}
	return tea.Batch(cmds...)
}

// setFocus moves focus and keeps the widgets' cursors in step
func (m Model) setFocus(f Focus) (Model, tea.Cmd) {
	m.Focus = f
	m.urlInput.Blur()
	m.feedbackInput.Blur()

	switch f {
	case FocusURL:
		return m, m.urlInput.Focus()
	case FocusFeedback:
		return m, m.feedbackInput.Focus()
	}
	return m, nil
}

// dispatch applies one event to the state
func (m Model) dispatch(e viewer.Event) Model {
	m.State = viewer.Reduce(m.State, e)
	return m
}
