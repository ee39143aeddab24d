package viewer

import (
	"strings"

	"podcastpulse/config"
)

// TopicView is one topic as displayed
type TopicView struct {
	Name   string `json:"name"`
	Quotes string `json:"quotes"`
}

// SectionView is a section heading with its display flag
type SectionView struct {
	ID       Section `json:"id"`
	Label    string  `json:"label"`
	Expanded bool    `json:"expanded"`
}

// View is the presentation-neutral rendering of a State shared by the
// terminal and web front ends
type View struct {
	URL         string `json:"url"`
	ShowLoading bool   `json:"show_loading"`
	Error       string `json:"error,omitempty"`
	HasSummary  bool   `json:"has_summary"`

	Title        string        `json:"title,omitempty"`
	VideoID      string        `json:"video_id,omitempty"`
	Message      string        `json:"message,omitempty"`
	Sections     []SectionView `json:"sections"`
	Topics       []TopicView   `json:"topics"`
	Resources    []string      `json:"resources"`
	KeyQuestions []string      `json:"key_questions"`

	// Feedback is always rendered; its submit control does nothing
	Feedback string `json:"feedback"`
}

// Render builds the View for s. Empty summary lists come back as empty
// slices, never nil, so they render as empty lists.
func Render(s State) View {
	v := View{
		URL:          s.URL,
		ShowLoading:  s.Loading,
		Error:        s.Err,
		Feedback:     s.Feedback,
		Sections:     make([]SectionView, 0, len(AllSections)),
		Topics:       []TopicView{},
		Resources:    []string{},
		KeyQuestions: []string{},
	}
	for _, sec := range AllSections {
		v.Sections = append(v.Sections, SectionView{ID: sec, Label: sec.Label(), Expanded: s.Sections.Expanded(sec)})
	}

	if s.Summary == nil {
		return v
	}

	v.HasSummary = true
	v.VideoID = s.VideoID
	v.Message = s.Message
	v.Title = s.Summary.Title
	if strings.TrimSpace(v.Title) == "" {
		v.Title = config.UntitledPlaceholder
	}
	for _, t := range s.Summary.Topics {
		v.Topics = append(v.Topics, TopicView{
			Name:   t.Name,
			Quotes: strings.Join(t.QuotesAdvice, config.QuoteDelimiter),
		})
	}
	v.Resources = append(v.Resources, s.Summary.Resources...)
	v.KeyQuestions = append(v.KeyQuestions, s.Summary.KeyQuestions...)
	return v
}

// Section returns the SectionView for id
func (v View) Section(id Section) SectionView {
	for _, sv := range v.Sections {
		if sv.ID == id {
			return sv
		}
	}
	return SectionView{ID: id}
}
