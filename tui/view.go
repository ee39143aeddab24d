package tui

import (
	"fmt"
	"strings"

	"podcastpulse/viewer"
)

// View implements tea.Model interface
func (m Model) View() string {
	v := viewer.Render(m.State)
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render(TextTitle))
	if m.Upstream != "" {
		b.WriteString(InfoStyle.Render("  API: " + m.Upstream))
	}
	b.WriteString("\n")

	// Input
	b.WriteString(m.urlInput.View())
	b.WriteString("\n\n")

	if v.ShowLoading {
		b.WriteString(m.spinner.View() + " " + StatusStyle.Render(TextLoading))
		b.WriteString("\n\n")
	}

	if v.Error != "" {
		b.WriteString(ErrorStyle.Render("❌ " + v.Error))
		b.WriteString("\n\n")
	}

	if v.HasSummary {
		b.WriteString(BoxStyle.Render(m.formatSummary(v)))
		b.WriteString("\n\n")
	}

	if len(m.History) > 0 {
		b.WriteString(SectionStyle.Render(TextHistoryLabel))
		b.WriteString("\n")
		for _, h := range m.History {
			line := "  • " + h.VideoID
			if h.Timestamp != "" {
				line += InfoStyle.Render("  " + string(h.Timestamp))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	// Feedback box is always shown
	b.WriteString(SectionStyle.Render(TextFeedbackLabel))
	b.WriteString("\n")
	b.WriteString(m.feedbackInput.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(TextFeedbackHint))
	b.WriteString("\n\n")

	b.WriteString(InfoStyle.Render(TextFooter))
	return b.String()
}

// formatSummary renders the loaded summary with its collapsible sections
func (m Model) formatSummary(v viewer.View) string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render(v.Title))
	if v.VideoID != "" {
		b.WriteString(InfoStyle.Render("  " + v.VideoID))
	}
	if v.Message != "" {
		b.WriteString(InfoStyle.Render("  (" + v.Message + ")"))
	}
	b.WriteString("\n")

	for i, sec := range v.Sections {
		b.WriteString("\n")
		b.WriteString(m.sectionHeading(i+1, sec))
		b.WriteString("\n")
		if !sec.Expanded {
			continue
		}

		var lines []string
		switch sec.ID {
		case viewer.SectionTopics:
			for _, t := range v.Topics {
				line := "• " + t.Name
				if t.Quotes != "" {
					line += "\n    " + InfoStyle.Render(t.Quotes)
				}
				lines = append(lines, line)
			}
		case viewer.SectionResources:
			for _, r := range v.Resources {
				lines = append(lines, "• "+r)
			}
		case viewer.SectionKeyQuestions:
			for _, q := range v.KeyQuestions {
				lines = append(lines, "• "+q)
			}
		}

		if len(lines) == 0 {
			b.WriteString(InfoStyle.Render("  " + TextEmptyList))
			b.WriteString("\n")
			continue
		}
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) sectionHeading(key int, sec viewer.SectionView) string {
	marker := "▾"
	if !sec.Expanded {
		marker = "▸"
	}
	heading := fmt.Sprintf("%s [%d] %s", marker, key, sec.Label)
	if m.Focus == FocusSections {
		return FocusedSectionStyle.Render(heading)
	}
	return SectionStyle.Render(heading)
}
