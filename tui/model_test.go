package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"podcastpulse/client"
	"podcastpulse/config"
	"podcastpulse/types"
	"podcastpulse/viewer"
)

type fakeSummarizer struct {
	resp  *types.SummarizeResponse
	err   error
	calls int32
	urls  []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, url string) (*types.SummarizeResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	f.urls = append(f.urls, url)
	return f.resp, f.err
}

type healthySummarizer struct {
	fakeSummarizer
}

func (h *healthySummarizer) Health(context.Context) (bool, error) { return true, nil }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// runCmd executes cmd and every command in any batch it returns
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// applyOutcomes feeds any OutcomeMsg produced by cmd back into the model
func applyOutcomes(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if out, ok := msg.(OutcomeMsg); ok {
			m, _ = update(t, m, out)
		}
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestEnterWithBlankURLSendsNothing(t *testing.T) {
	api := &fakeSummarizer{}
	m := NewModel(api, nil)
	m = typeText(t, m, "   ")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("blank submit should not return a command")
	}
	if m.State.Err != "Please enter a valid URL" {
		t.Fatalf("error = %q", m.State.Err)
	}
	if got := atomic.LoadInt32(&api.calls); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}
	if !strings.Contains(m.View(), "Please enter a valid URL") {
		t.Fatalf("view should show the validation error")
	}
}

func TestSubmitLoadsSummary(t *testing.T) {
	api := &fakeSummarizer{resp: &types.SummarizeResponse{
		VideoID: "abc",
		Summary: &types.Summary{
			Title:        "Ep 1",
			Topics:       []types.Topic{{Name: "Focus", QuotesAdvice: []string{"Do one thing", "Say no"}}},
			Resources:    []string{"Deep Work"},
			KeyQuestions: []string{"What matters?"},
		},
	}}
	m := NewModel(api, nil)
	m = typeText(t, m, "https://youtu.be/abc")
	if m.State.URL != "https://youtu.be/abc" {
		t.Fatalf("typed URL not mirrored into state: %q", m.State.URL)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.State.Loading {
		t.Fatalf("state should be loading after submit")
	}
	if !strings.Contains(m.View(), TextLoading) {
		t.Fatalf("view should show the loading indicator")
	}

	m = applyOutcomes(t, m, cmd)
	if m.State.Phase() != viewer.PhaseLoaded {
		t.Fatalf("phase = %s, want loaded", m.State.Phase())
	}
	if len(api.urls) != 1 || api.urls[0] != "https://youtu.be/abc" {
		t.Fatalf("requests = %v", api.urls)
	}

	view := m.View()
	for _, want := range []string{"Ep 1", "Focus", "Do one thing | Say no", "Deep Work", "What matters?", "Topics", "Resources", "Key Questions"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmitShowsServerError(t *testing.T) {
	api := &fakeSummarizer{err: &client.ApplicationError{Status: 500, Message: "server down"}}
	m := NewModel(api, nil)
	m = typeText(t, m, "https://youtu.be/abc")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = applyOutcomes(t, m, cmd)

	if m.State.Err != "server down" {
		t.Fatalf("error = %q, want server down", m.State.Err)
	}
	if m.State.Summary != nil {
		t.Fatalf("summary should be cleared on error")
	}
	if strings.Contains(m.View(), "Topics") {
		t.Fatalf("no summary sections should render on error")
	}
}

func TestEmptySectionsStillRender(t *testing.T) {
	api := &fakeSummarizer{resp: &types.SummarizeResponse{Summary: &types.Summary{}}}
	m := NewModel(api, nil)
	m = typeText(t, m, "https://youtu.be/abc")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = applyOutcomes(t, m, cmd)

	view := m.View()
	if !strings.Contains(view, "Untitled") {
		t.Fatalf("title fallback missing")
	}
	if got := strings.Count(view, TextEmptyList); got != 3 {
		t.Fatalf("empty list markers = %d, want 3", got)
	}
}

func TestSectionKeysToggleOnlyWhenFocused(t *testing.T) {
	m := NewModel(&fakeSummarizer{}, nil)

	m = typeText(t, m, "1")
	if !m.State.Sections.Expanded(viewer.SectionTopics) {
		t.Fatalf("'1' typed into the URL box must not toggle")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus != FocusSections {
		t.Fatalf("focus = %v, want sections", m.Focus)
	}

	m = typeText(t, m, "2")
	if m.State.Sections.Expanded(viewer.SectionResources) {
		t.Fatalf("resources should be collapsed")
	}
	if !m.State.Sections.Expanded(viewer.SectionTopics) || !m.State.Sections.Expanded(viewer.SectionKeyQuestions) {
		t.Fatalf("other sections must not change")
	}

	m = typeText(t, m, "2")
	if !m.State.Sections.Expanded(viewer.SectionResources) {
		t.Fatalf("second toggle should restore resources")
	}
}

func TestResubmitWhileLoading(t *testing.T) {
	api := &fakeSummarizer{resp: &types.SummarizeResponse{Summary: &types.Summary{Title: "x"}}}
	m := NewModel(api, nil)
	m = typeText(t, m, "https://youtu.be/a")

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if first == nil || second == nil {
		t.Fatalf("loading must not block a second submit")
	}
	if m.State.Seq != 2 {
		t.Fatalf("seq = %d, want 2", m.State.Seq)
	}
}

func TestFeedbackSubmitIsNoop(t *testing.T) {
	api := &fakeSummarizer{}
	m := NewModel(api, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus != FocusFeedback {
		t.Fatalf("focus = %v, want feedback", m.Focus)
	}
	m = typeText(t, m, "love it")
	before := m.State

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	for _, msg := range runCmd(cmd) {
		if fs, ok := msg.(FeedbackSentMsg); ok && fs.Err != nil {
			t.Fatalf("noop feedback returned %v", fs.Err)
		}
		m, _ = update(t, m, msg)
	}

	if m.State != before {
		t.Fatalf("feedback submit changed state: %+v -> %+v", before, m.State)
	}
	if atomic.LoadInt32(&api.calls) != 0 {
		t.Fatalf("feedback must not reach the summarization API")
	}
	if !strings.Contains(m.View(), TextFeedbackLabel) {
		t.Fatalf("feedback box should always render")
	}
}

func TestHealthProbe(t *testing.T) {
	m := NewModel(&healthySummarizer{}, nil)
	if m.Init() == nil {
		t.Fatalf("Init should return commands")
	}

	m, _ = update(t, m, HealthMsg{OK: true})
	if m.Upstream != "online" {
		t.Fatalf("upstream = %q", m.Upstream)
	}
	m, _ = update(t, m, HealthMsg{Err: errors.New("refused")})
	if m.Upstream != "unreachable" {
		t.Fatalf("upstream = %q", m.Upstream)
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(&fakeSummarizer{}, nil)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should return tea.Quit")
	}
}

type historySummarizer struct {
	fakeSummarizer
	entries []types.HistoryEntry
	err     error
	lists   int32
}

func (h *historySummarizer) History(context.Context) ([]types.HistoryEntry, error) {
	atomic.AddInt32(&h.lists, 1)
	return h.entries, h.err
}

func TestHistoryRefreshedAfterSummary(t *testing.T) {
	api := &historySummarizer{
		fakeSummarizer: fakeSummarizer{resp: &types.SummarizeResponse{VideoID: "v2", Summary: &types.Summary{Title: "Ep"}}},
		entries:        []types.HistoryEntry{{VideoID: "v2", Timestamp: "2024-02-02"}, {VideoID: "v1"}},
	}
	m := NewModel(api, nil)

	m, cmd := update(t, m, OutcomeMsg{Event: viewer.SummaryReceived{Response: api.resp}})
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one history message, got %d", len(msgs))
	}
	hm, ok := msgs[0].(HistoryMsg)
	if !ok {
		t.Fatalf("got %T, want HistoryMsg", msgs[0])
	}
	m, _ = update(t, m, hm)

	if len(m.History) != 2 || m.History[0].VideoID != "v2" {
		t.Fatalf("history = %+v", m.History)
	}
	view := m.View()
	if !strings.Contains(view, TextHistoryLabel) || !strings.Contains(view, "2024-02-02") {
		t.Fatalf("history not rendered:\n%s", view)
	}
}

func TestHistoryFailureKeepsPrevious(t *testing.T) {
	m := NewModel(&fakeSummarizer{}, nil)
	m, _ = update(t, m, HistoryMsg{Entries: []types.HistoryEntry{{VideoID: "v1"}}})
	m, _ = update(t, m, HistoryMsg{Err: errors.New("refused")})

	if len(m.History) != 1 || m.History[0].VideoID != "v1" {
		t.Fatalf("history = %+v", m.History)
	}
}

func TestHistoryIsCapped(t *testing.T) {
	entries := make([]types.HistoryEntry, config.HistoryLimit+5)
	m := NewModel(&fakeSummarizer{}, nil)
	m, _ = update(t, m, HistoryMsg{Entries: entries})

	if len(m.History) != config.HistoryLimit {
		t.Fatalf("len(history) = %d, want %d", len(m.History), config.HistoryLimit)
	}
}

func TestFailedSummaryDoesNotRefreshHistory(t *testing.T) {
	api := &historySummarizer{}
	m := NewModel(api, nil)

	_, cmd := update(t, m, OutcomeMsg{Event: viewer.SummaryFailed{Err: errors.New("boom")}})
	if cmd != nil {
		t.Fatal("a failed summary should not list history")
	}
}
