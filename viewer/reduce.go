package viewer

import (
	"strings"

	"podcastpulse/client"
	"podcastpulse/config"
	"podcastpulse/types"
)

// Reduce applies e to s and returns the resulting state
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case URLChanged:
		s.URL = e.URL
	case SubmitRequested:
		return submit(s, e.URL)
	case SummaryReceived:
		if s.stale(e.Seq) {
			return s
		}
		s.Loading = false
		s.Err, s.ErrKind = "", ""
		s.Summary = &types.Summary{}
		s.VideoID, s.Message = "", ""
		if e.Response != nil {
			if e.Response.Summary != nil {
				s.Summary = e.Response.Summary
			}
			s.VideoID = e.Response.VideoID
			s.Message = e.Response.Message
		}
	case SummaryFailed:
		if s.stale(e.Seq) {
			return s
		}
		s.Loading = false
		s.Summary, s.VideoID, s.Message = nil, "", ""
		s.Err = client.UserMessage(e.Err)
		if s.Err == "" {
			s.Err = config.GenericErrorMessage
		}
		s.ErrKind = client.Kind(e.Err)
	case SectionToggled:
		s.Sections = s.Sections.Toggle(e.Section)
	case FeedbackChanged:
		s.Feedback = e.Text
	case FeedbackSubmitted:
		// Not wired to anything.
	}
	return s
}

// Begin applies a submit of url and reports whether a request must be sent
// and the sequence number it carries
func Begin(s State, url string) (State, uint64, bool) {
	next := Reduce(s, SubmitRequested{URL: url})
	if !next.Loading || next.Seq == s.Seq {
		return next, 0, false
	}
	return next, next.Seq, true
}

func submit(s State, url string) State {
	s.URL = url
	if strings.TrimSpace(url) == "" {
		err := &client.ValidationError{Message: config.InvalidURLMessage}
		s.Err, s.ErrKind = client.UserMessage(err), client.Kind(err)
		s.Summary, s.VideoID, s.Message = nil, "", ""
		return s
	}
	s.Seq++
	s.Loading = true
	s.Err, s.ErrKind = "", ""
	s.Summary, s.VideoID, s.Message = nil, "", ""
	return s
}

func (s State) stale(seq uint64) bool {
	return s.Sequenced && seq != s.Seq
}
