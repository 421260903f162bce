package dto

import "github.com/noah-isme/maum-diary-api/internal/models"

// StudentDetailResponse is a student's full diary history as shown on the
// detail tab.
type StudentDetailResponse struct {
	Name    string         `json:"name"`
	Entries models.Entries `json:"entries"`
}

// SaveNoteRequest binds a pending teacher note to one (student, date) pair.
type SaveNoteRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Note string `json:"note"`
}

// AnalyzeEntryRequest selects the day to analyze in single-entry mode.
type AnalyzeEntryRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// AnalysisResponse carries the free-text report verbatim from the
// completion service.
type AnalysisResponse struct {
	Name   string `json:"name"`
	Report string `json:"report"`
}

// ExportResponse points the caller at a signed download for a rendered
// summary export.
type ExportResponse struct {
	FileID      string `json:"file_id"`
	Format      string `json:"format"`
	DownloadURL string `json:"download_url"`
	ExpiresAt   int64  `json:"expires_at"`
}
