package viewer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcastpulse/client"
	"podcastpulse/types"
)

// gatedSummarizer holds each request until its URL's gate is released
type gatedSummarizer struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	calls   int32
}

func newGatedSummarizer() *gatedSummarizer {
	return &gatedSummarizer{gates: make(map[string]chan struct{}), started: make(chan string, 8)}
}

func (g *gatedSummarizer) gate(url string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[url]
	if !ok {
		ch = make(chan struct{})
		g.gates[url] = ch
	}
	return ch
}

func (g *gatedSummarizer) Summarize(ctx context.Context, url string) (*types.SummarizeResponse, error) {
	atomic.AddInt32(&g.calls, 1)
	g.started <- url
	select {
	case <-g.gate(url):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &types.SummarizeResponse{Summary: &types.Summary{Title: url}}, nil
}

type stubSummarizer struct {
	resp  *types.SummarizeResponse
	err   error
	calls int32
}

func (s *stubSummarizer) Summarize(context.Context, string) (*types.SummarizeResponse, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.resp, s.err
}

func waitStarted(t *testing.T, g *gatedSummarizer, want string) {
	t.Helper()
	select {
	case got := <-g.started:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("request for %s never started", want)
	}
}

func waitDone(t *testing.T, done <-chan State) State {
	t.Helper()
	select {
	case s := <-done:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("submit never finished")
	}
	return State{}
}

// overlappingSubmits sends a then b, then lets b's response arrive before a's
func overlappingSubmits(t *testing.T, v *Viewer, g *gatedSummarizer) State {
	t.Helper()
	ctx := context.Background()

	doneA := make(chan State, 1)
	go func() { doneA <- v.Submit(ctx, "a") }()
	waitStarted(t, g, "a")

	doneB := make(chan State, 1)
	go func() { doneB <- v.Submit(ctx, "b") }()
	waitStarted(t, g, "b")

	close(g.gate("b"))
	waitDone(t, doneB)
	close(g.gate("a"))
	waitDone(t, doneA)

	return v.State()
}

func TestSubmitBlankURLSendsNothing(t *testing.T) {
	api := &stubSummarizer{}
	v := NewViewer(api, nil)

	s := v.Submit(context.Background(), "   ")
	assert.Equal(t, "Please enter a valid URL", s.Err)
	assert.Zero(t, atomic.LoadInt32(&api.calls))
}

func TestSubmitSuccess(t *testing.T) {
	api := &stubSummarizer{resp: &types.SummarizeResponse{Summary: &types.Summary{Title: "Ep 1"}}}
	v := NewViewer(api, nil)

	s := v.Submit(context.Background(), "https://youtu.be/abc")
	assert.EqualValues(t, 1, atomic.LoadInt32(&api.calls))
	assert.Equal(t, PhaseLoaded, s.Phase())
	assert.Equal(t, "Ep 1", Render(s).Title)
	assert.False(t, s.Loading)
}

func TestSubmitFailure(t *testing.T) {
	api := &stubSummarizer{err: &client.ApplicationError{Status: 500, Message: "server down"}}
	v := NewViewer(api, nil)

	s := v.Submit(context.Background(), "https://youtu.be/abc")
	assert.Equal(t, "server down", s.Err)
	assert.Nil(t, s.Summary)
	assert.False(t, s.Loading)
}

func TestLastArrivalWins(t *testing.T) {
	g := newGatedSummarizer()
	v := NewViewer(g, nil)

	s := overlappingSubmits(t, v, g)
	require.NotNil(t, s.Summary)
	assert.Equal(t, "a", s.Summary.Title, "a was sent first but arrived last")
	assert.EqualValues(t, 2, atomic.LoadInt32(&g.calls))
}

func TestSequencedViewerKeepsLatestRequest(t *testing.T) {
	g := newGatedSummarizer()
	v := NewViewer(g, nil, WithSequencing(true))

	s := overlappingSubmits(t, v, g)
	require.NotNil(t, s.Summary)
	assert.Equal(t, "b", s.Summary.Title)
}

type recordingFeedback struct {
	texts []string
	err   error
}

func (r *recordingFeedback) SubmitFeedback(_ context.Context, text string) error {
	r.texts = append(r.texts, text)
	return r.err
}

func TestSubmitFeedbackLeavesStateAlone(t *testing.T) {
	fb := &recordingFeedback{}
	v := NewViewer(&stubSummarizer{}, fb)
	v.Dispatch(FeedbackChanged{Text: "nice"})
	before := v.State()

	require.NoError(t, v.SubmitFeedback(context.Background()))
	assert.Equal(t, before, v.State())
	assert.Equal(t, []string{"nice"}, fb.texts)

	fb.err = errors.New("nope")
	assert.Error(t, v.SubmitFeedback(context.Background()))
}

func TestNoopFeedback(t *testing.T) {
	v := NewViewer(&stubSummarizer{}, nil)
	v.Dispatch(FeedbackChanged{Text: "hello"})
	assert.NoError(t, v.SubmitFeedback(context.Background()))
	assert.Equal(t, "hello", v.State().Feedback)
}

func TestToggleViaViewer(t *testing.T) {
	v := NewViewer(&stubSummarizer{}, nil)
	s := v.ToggleSection(SectionKeyQuestions)
	assert.False(t, s.Sections.Expanded(SectionKeyQuestions))
	s = v.ToggleSection(SectionKeyQuestions)
	assert.True(t, s.Sections.Expanded(SectionKeyQuestions))
}
