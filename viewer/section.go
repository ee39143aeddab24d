package viewer

// Section identifies one of the three collapsible result regions
type Section string

const (
	SectionTopics       Section = "topics"
	SectionResources    Section = "resources"
	SectionKeyQuestions Section = "key_questions"
)

// AllSections lists the sections in display order
var AllSections = []Section{SectionTopics, SectionResources, SectionKeyQuestions}

var sectionLabels = map[Section]string{
	SectionTopics:       "Topics",
	SectionResources:    "Resources",
	SectionKeyQuestions: "Key Questions",
}

// Label is the heading shown for the section
func (s Section) Label() string { return sectionLabels[s] }

// ParseSection maps an identifier to a Section
func ParseSection(id string) (Section, bool) {
	s := Section(id)
	_, ok := sectionLabels[s]
	return s, ok
}

// Expansion holds each section's display flag. The zero value has every
// section expanded, so a freshly decoded session starts expanded too.
type Expansion struct {
	TopicsCollapsed       bool `json:"topics_collapsed"`
	ResourcesCollapsed    bool `json:"resources_collapsed"`
	KeyQuestionsCollapsed bool `json:"key_questions_collapsed"`
}

// Expanded reports whether s is currently expanded
func (e Expansion) Expanded(s Section) bool {
	switch s {
	case SectionTopics:
		return !e.TopicsCollapsed
	case SectionResources:
		return !e.ResourcesCollapsed
	case SectionKeyQuestions:
		return !e.KeyQuestionsCollapsed
	}
	return false
}

// Toggle flips s and leaves the other sections alone. Unknown sections are a no-op.
func (e Expansion) Toggle(s Section) Expansion {
	switch s {
	case SectionTopics:
		e.TopicsCollapsed = !e.TopicsCollapsed
	case SectionResources:
		e.ResourcesCollapsed = !e.ResourcesCollapsed
	case SectionKeyQuestions:
		e.KeyQuestionsCollapsed = !e.KeyQuestionsCollapsed
	}
	return e
}
