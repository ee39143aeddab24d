package viewer

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"podcastpulse/client"
	"podcastpulse/logger"
)

// Fetch sends one summarize request for url and returns its outcome as an event
func Fetch(ctx context.Context, api client.Summarizer, seq uint64, url string) Event {
	resp, err := api.Summarize(ctx, url)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"seq": seq, "kind": client.Kind(err)}).
			Warnf("summarize failed: %v", err)
		return SummaryFailed{Seq: seq, Err: err}
	}
	logger.Log.WithFields(logrus.Fields{"seq": seq, "video_id": resp.VideoID}).Info("summary received")
	return SummaryReceived{Seq: seq, Response: resp}
}

// Viewer owns one State and applies events to it in arrival order.
// It is safe for concurrent use.
type Viewer struct {
	mu       sync.Mutex
	state    State
	api      client.Summarizer
	feedback FeedbackHandler
}

// NewViewer creates a viewer in the idle state
func NewViewer(api client.Summarizer, feedback FeedbackHandler, opts ...Option) *Viewer {
	if feedback == nil {
		feedback = NoopFeedback{}
	}
	return &Viewer{state: New(opts...), api: api, feedback: feedback}
}

// State returns a snapshot of the current state
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Dispatch applies e and returns the new state
func (v *Viewer) Dispatch(e Event) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = Reduce(v.state, e)
	return v.state
}

// Submit runs the submit operation for url: validate, mark loading, send one
// request, and apply its outcome. It blocks until the outcome is applied and
// returns the state at that point. Concurrent submits are not serialized.
func (v *Viewer) Submit(ctx context.Context, url string) State {
	v.mu.Lock()
	next, seq, send := Begin(v.state, url)
	v.state = next
	v.mu.Unlock()

	if !send {
		return next
	}
	return v.Dispatch(Fetch(ctx, v.api, seq, url))
}

// ToggleSection flips one section's display flag
func (v *Viewer) ToggleSection(s Section) State {
	return v.Dispatch(SectionToggled{Section: s})
}

// SubmitFeedback hands the current draft to the feedback handler. The draft
// stays in place and no other state changes.
func (v *Viewer) SubmitFeedback(ctx context.Context) error {
	st := v.Dispatch(FeedbackSubmitted{})
	return v.feedback.SubmitFeedback(ctx, st.Feedback)
}
