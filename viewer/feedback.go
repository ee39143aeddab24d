package viewer

import "context"

// FeedbackHandler receives submitted feedback text
type FeedbackHandler interface {
	SubmitFeedback(ctx context.Context, text string) error
}

// NoopFeedback is the feedback handler the viewer ships with. The feedback
// control is rendered but nothing is sent or stored.
type NoopFeedback struct{}

// SubmitFeedback discards text
func (NoopFeedback) SubmitFeedback(context.Context, string) error { return nil }
