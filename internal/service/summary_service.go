package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/sheets"
)

type diaryReader interface {
	ReadRecords(ctx context.Context, locator string) (*models.DiaryBook, error)
}

type rosterProvider interface {
	Students(ctx context.Context) ([]models.Student, error)
}

// SummaryService builds the daily overview: one summary per roster student,
// roster order, plus the derived distribution and flagged messages. This is
// the most expensive operation in the system (one sheet read per student),
// so results are cached per date and recomputed only on first load or
// explicit refresh.
type SummaryService struct {
	roster  rosterProvider
	reader  diaryReader
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(roster rosterProvider, reader diaryReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger, ttl time.Duration) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{roster: roster, reader: reader, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

func summaryCacheKey(date string) string {
	return fmt.Sprintf("summary:daily:%s", date)
}

// DailyOverview returns the overview for the given date and reports whether
// it was served from cache.
func (s *SummaryService) DailyOverview(ctx context.Context, date string) (*dto.DailyOverviewResponse, bool, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}

	cacheKey := summaryCacheKey(date)
	cached := &dto.DailyOverviewResponse{}
	if hit, err := s.cache.Get(ctx, cacheKey, cached); err == nil && hit {
		return cached, true, nil
	}

	summaries, err := s.summarizeToday(ctx, date)
	if err != nil {
		return nil, false, err
	}

	overview := &dto.DailyOverviewResponse{
		Date:         date,
		Summaries:    summaries,
		Distribution: distribution(summaries),
		Flagged:      flaggedMessages(summaries),
	}

	if err := s.cache.Set(ctx, cacheKey, overview, s.ttl); err != nil {
		s.logger.Warn("failed to cache daily overview", zap.String("date", date), zap.Error(err))
	}
	return overview, false, nil
}

// Invalidate drops every cached overview, forcing recomputation.
func (s *SummaryService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, "summary:daily:*")
}

// summarizeToday walks the roster in order. Each student is isolated: a
// failing fetch becomes that student's error tag and the scan continues.
func (s *SummaryService) summarizeToday(ctx context.Context, date string) ([]models.DailySummary, error) {
	students, err := s.roster.Students(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.DailySummary, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, s.summarizeStudent(ctx, student, date))
	}
	return summaries, nil
}

func (s *SummaryService) summarizeStudent(ctx context.Context, student models.Student, date string) models.DailySummary {
	summary := models.DailySummary{Name: student.Name}

	// syntactic check first so a bad locator never costs a network call
	if !sheets.ValidLocator(student.SourceLocator) {
		summary.Error = models.SummaryErrLocatorFormat
		return summary
	}

	start := time.Now()
	book, err := s.reader.ReadRecords(ctx, student.SourceLocator)
	s.metrics.ObserveSheetRequest("read", err, time.Since(start))
	if err != nil {
		summary.Error = classifyReadError(err)
		s.logger.Warn("student summary fetch failed",
			zap.String("student", student.Name),
			zap.String("kind", summary.Error),
			zap.Error(err))
		return summary
	}

	entry, found := book.Entries.FindByDate(date)
	if !found {
		summary.Error = models.SummaryErrNoEntry
		return summary
	}

	summary.Emotion = entry.Emotion
	summary.Message = entry.Message
	return summary
}

func classifyReadError(err error) string {
	switch {
	case errors.Is(err, appErrors.ErrSourceUnreachable), errors.Is(err, appErrors.ErrInvalidLocator):
		return models.SummaryErrSourceNotFound
	case errors.Is(err, appErrors.ErrRateLimited):
		return models.SummaryErrRateLimited
	default:
		return models.SummaryErrUnknown
	}
}

var bucketOrder = []string{
	string(models.GroupPositive),
	string(models.GroupNeutral),
	string(models.GroupNegative),
	models.BucketUnclassified,
	models.BucketMissing,
}

// distribution counts every summarized student into exactly one bucket.
// Students whose fetch failed count as missing rather than disappearing
// from the totals.
func distribution(summaries []models.DailySummary) []dto.EmotionBucketCount {
	counts := make(map[string]int, len(bucketOrder))
	for _, summary := range summaries {
		counts[models.ParseEmotion(summary.Emotion).Bucket()]++
	}

	result := make([]dto.EmotionBucketCount, 0, len(bucketOrder))
	for _, bucket := range bucketOrder {
		result = append(result, dto.EmotionBucketCount{Bucket: bucket, Count: counts[bucket]})
	}
	return result
}

// flaggedMessages surfaces every non-empty message of the day, negative
// group first, preserving roster order within a group.
func flaggedMessages(summaries []models.DailySummary) []dto.FlaggedMessage {
	flagged := make([]dto.FlaggedMessage, 0)
	for _, summary := range summaries {
		if summary.Message == nil || *summary.Message == "" {
			continue
		}
		flagged = append(flagged, dto.FlaggedMessage{
			Name:    summary.Name,
			Bucket:  models.ParseEmotion(summary.Emotion).Bucket(),
			Message: *summary.Message,
		})
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].Bucket == string(models.GroupNegative) && flagged[j].Bucket != string(models.GroupNegative)
	})
	return flagged
}
