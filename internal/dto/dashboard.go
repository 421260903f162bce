package dto

import "github.com/noah-isme/maum-diary-api/internal/models"

// DailyOverviewResponse is the aggregated payload behind the first two
// dashboard tabs: per-student summaries, emotion distribution, and the
// messages surfaced for the teacher's attention.
type DailyOverviewResponse struct {
	Date         string                 `json:"date"`
	Summaries    []models.DailySummary  `json:"summaries"`
	Distribution []EmotionBucketCount   `json:"distribution"`
	Flagged      []FlaggedMessage       `json:"flagged_messages"`
}

// EmotionBucketCount is one slice of the distribution, including the
// unclassified and missing buckets.
type EmotionBucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// FlaggedMessage is a student message surfaced on the overview. Negative
// group entries sort first.
type FlaggedMessage struct {
	Name    string `json:"name"`
	Bucket  string `json:"bucket"`
	Message string `json:"message"`
}
