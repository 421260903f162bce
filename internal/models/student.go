package models

// Student is one roster row: a display name and the URL of the student's
// per-entry diary sheet. The name doubles as the cache key, so the roster is
// expected to keep it unique.
type Student struct {
	Name          string `json:"name"`
	SourceLocator string `json:"source_locator"`
}
