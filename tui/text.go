package tui

// UI Text Constants
const (
	TextTitle             = "🎧 Podcast Pulse"
	TextURLPlaceholder    = "Paste a YouTube URL..."
	TextFeedbackLabel     = "Feedback"
	TextFeedbackHint      = "ctrl+s to send feedback"
	TextFeedbackPlacehold = "Tell us what you think..."
	TextLoading           = "Processing... this can take a minute"
	TextEmptyList         = "(none)"
	TextHistoryLabel      = "Recently summarized"

	TextFooter = "enter submit | tab switch focus | 1/2/3 toggle sections (when focused) | esc quit"
)
