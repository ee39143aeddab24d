package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"podcastpulse/client"
	"podcastpulse/config"
	"podcastpulse/logger"
	"podcastpulse/viewer"
)

// sectionKeys maps number keys to sections while sections have focus
var sectionKeys = map[string]viewer.Section{
	"1": viewer.SectionTopics,
	"2": viewer.SectionResources,
	"3": viewer.SectionKeyQuestions,
}

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case OutcomeMsg:
		return m.handleOutcome(msg)
	case HealthMsg:
		return m.handleHealth(msg)
	case HistoryMsg:
		return m.handleHistory(msg)
	case FeedbackSentMsg:
		if msg.Err != nil {
			logger.Log.Warnf("feedback handler failed: %v", msg.Err)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.State.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m.forwardToInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.Focus + 1) % 3)
	case "shift+tab":
		return m.setFocus((m.Focus + 2) % 3)
	case "ctrl+s":
		return m.submitFeedback()
	case "enter":
		if m.Focus == FocusURL {
			return m.submit()
		}
	}

	if m.Focus == FocusSections {
		if sec, ok := sectionKeys[msg.String()]; ok {
			return m.dispatch(viewer.SectionToggled{Section: sec}), nil
		}
		return m, nil
	}

	return m.forwardToInput(msg)
}

// submit starts the submit operation for the current input. Loading never
// blocks a new submit.
func (m Model) submit() (tea.Model, tea.Cmd) {
	url := m.urlInput.Value()
	next, seq, send := viewer.Begin(m.State, url)
	m.State = next
	if !send {
		logger.Log.Debug("submit rejected: empty url")
		return m, nil
	}

	logger.Log.WithFields(logrus.Fields{"seq": seq, "url": url}).Info("submitting")
	return m, tea.Batch(m.spinner.Tick, summarize(m.api, seq, url))
}

// submitFeedback runs the unwired feedback control
func (m Model) submitFeedback() (tea.Model, tea.Cmd) {
	m = m.dispatch(viewer.FeedbackSubmitted{})
	return m, sendFeedback(m.feedback, m.State.Feedback)
}

// handleOutcome applies a summarize outcome. A new summary refreshes the history.
func (m Model) handleOutcome(msg OutcomeMsg) (tea.Model, tea.Cmd) {
	m = m.dispatch(msg.Event)
	if _, ok := msg.Event.(viewer.SummaryReceived); ok {
		if hl, ok := m.api.(client.HistoryLister); ok {
			return m, fetchHistory(hl)
		}
	}
	return m, nil
}

// handleHistory keeps the last good history when a refresh fails
func (m Model) handleHistory(msg HistoryMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Log.Warnf("history unavailable: %v", msg.Err)
		return m, nil
	}
	entries := msg.Entries
	if len(entries) > config.HistoryLimit {
		entries = entries[:config.HistoryLimit]
	}
	m.History = entries
	return m, nil
}

// handleHealth records the API probe result
func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err != nil:
		logger.Log.Warnf("summarization API health check failed: %v", msg.Err)
		m.Upstream = "unreachable"
	case msg.OK:
		m.Upstream = "online"
	default:
		m.Upstream = "unhealthy"
	}
	return m, nil
}

// handleResize fits the inputs to the terminal
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	w := msg.Width - 6
	if w < 20 {
		w = 20
	}
	m.urlInput.Width = w
	m.feedbackInput.SetWidth(w)
	return m, nil
}

// forwardToInput lets the focused widget handle msg and mirrors its value into State
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Focus {
	case FocusURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
		if v := m.urlInput.Value(); v != m.State.URL {
			m = m.dispatch(viewer.URLChanged{URL: v})
		}
	case FocusFeedback:
		m.feedbackInput, cmd = m.feedbackInput.Update(msg)
		if v := m.feedbackInput.Value(); v != m.State.Feedback {
			m = m.dispatch(viewer.FeedbackChanged{Text: v})
		}
	}
	return m, cmd
}
