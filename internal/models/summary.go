package models

// Error tags attached to per-student daily summaries. The taxonomy exists
// for display grouping, not control flow.
const (
	SummaryErrLocatorFormat  = "locator format error"
	SummaryErrNoEntry        = "no entry today"
	SummaryErrSourceNotFound = "source not found"
	SummaryErrRateLimited    = "rate limited"
	SummaryErrUnknown        = "unknown error"
)

// DailySummary is one student's slice of the daily overview. Error, when
// non-empty, takes precedence over the data fields.
type DailySummary struct {
	Name    string  `json:"name"`
	Emotion *string `json:"emotion_today"`
	Message *string `json:"message_today"`
	Error   string  `json:"error,omitempty"`
}
