package config

import "time"

// Summarization API Constants
const (
	// DefaultAPIEndpoint is the summarization endpoint used when none is configured
	DefaultAPIEndpoint = "http://localhost:8000/download"

	// HealthPath is the API's liveness route, resolved against the endpoint's host
	HealthPath = "/health"

	// HealthTimeout bounds the advisory health probe (summarize calls have no timeout)
	HealthTimeout = 5 * time.Second

	// HistoryPath lists previously summarized videos, resolved like HealthPath
	HistoryPath = "/history"

	// HistoryTimeout bounds a history lookup
	HistoryTimeout = 5 * time.Second

	// HistoryLimit caps how many history entries the UIs show, newest first
	HistoryLimit = 10
)

// Viewer Constants
const (
	// InvalidURLMessage is shown when the URL input is empty or whitespace
	InvalidURLMessage = "Please enter a valid URL"

	// GenericErrorMessage is shown when a failed response carries no message
	GenericErrorMessage = "Error"

	// UntitledPlaceholder replaces a missing summary title
	UntitledPlaceholder = "Untitled"

	// QuoteDelimiter joins a topic's quotes and advice on one line
	QuoteDelimiter = " | "
)

// Web Constants
const (
	// DefaultListenAddr is the web UI listen address
	DefaultListenAddr = ":8080"

	// SessionCookie names the cookie carrying the web session id
	SessionCookie = "pp_session"

	// DefaultSessionTTL is how long an idle web session keeps its state
	DefaultSessionTTL = 30 * time.Minute

	// PageRefreshSeconds is how often the page reloads itself while a summary is loading
	PageRefreshSeconds = 2

	// SweepInterval is how often the in-memory session store drops expired sessions
	SweepInterval = time.Minute

	// ShutdownTimeout bounds graceful HTTP shutdown
	ShutdownTimeout = 10 * time.Second
)

// Redis Constants
const (
	// SessionKeyPrefix prefixes every session key stored in Redis
	SessionKeyPrefix = "pp:session:"

	// RedisDialTimeout bounds the start-up ping
	RedisDialTimeout = 5 * time.Second

	// MaxUpdateAttempts caps optimistic-transaction retries for one session update
	MaxUpdateAttempts = 8
)

// Logging Constants
const (
	// DefaultLogLevel is used when the configured level does not parse
	DefaultLogLevel = "info"

	// TUILogFile receives logs while the terminal UI owns the screen
	TUILogFile = "podcastpulse.log"
)
