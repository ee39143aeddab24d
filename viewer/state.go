// Package viewer holds the summary viewer's UI state and the pure transition
// function every front end drives it through.
package viewer

import "podcastpulse/types"

// Phase is the derived display phase of a State
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseLoaded  Phase = "loaded"
)

// State is the complete client-held UI state. It is a value: Reduce returns a
// new State and never mutates the summary it was given.
type State struct {
	URL      string         `json:"url"`
	Loading  bool           `json:"loading"`
	Err      string         `json:"error,omitempty"`
	ErrKind  string         `json:"error_kind,omitempty"`
	Summary  *types.Summary `json:"summary,omitempty"`
	VideoID  string         `json:"video_id,omitempty"`
	Message  string         `json:"message,omitempty"`
	Sections Expansion      `json:"sections"`
	Feedback string         `json:"-"`

	// Seq is the sequence number of the most recently issued request
	Seq uint64 `json:"seq"`
	// Sequenced drops outcomes of superseded requests. When false the
	// last outcome to arrive wins, whichever request it belongs to.
	Sequenced bool `json:"sequenced"`
}

// Option configures a new State
type Option func(*State)

// WithSequencing turns request sequencing on or off
func WithSequencing(on bool) Option {
	return func(s *State) { s.Sequenced = on }
}

// New returns the idle state a viewer starts with
func New(opts ...Option) State {
	var s State
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Phase derives which of idle/loading/error/loaded the state shows
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseError
	case s.Summary != nil:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}
