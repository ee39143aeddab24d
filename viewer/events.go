package viewer

import "podcastpulse/types"

// Event is anything that can move a State
type Event interface {
	isEvent()
}

// URLChanged records an edit of the URL input
type URLChanged struct {
	URL string
}

// SubmitRequested is the user pressing submit with URL in the input
type SubmitRequested struct {
	URL string
}

// SummaryReceived is a successful response to request Seq
type SummaryReceived struct {
	Seq      uint64
	Response *types.SummarizeResponse
}

// SummaryFailed is any failure of request Seq
type SummaryFailed struct {
	Seq uint64
	Err error
}

// SectionToggled is a click on a section heading
type SectionToggled struct {
	Section Section
}

// FeedbackChanged records an edit of the feedback box
type FeedbackChanged struct {
	Text string
}

// FeedbackSubmitted is a press of the feedback submit control
type FeedbackSubmitted struct{}

func (URLChanged) isEvent()        {}
func (SubmitRequested) isEvent()   {}
func (SummaryReceived) isEvent()   {}
func (SummaryFailed) isEvent()     {}
func (SectionToggled) isEvent()    {}
func (FeedbackChanged) isEvent()   {}
func (FeedbackSubmitted) isEvent() {}
