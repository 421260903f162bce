package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/sheets"
)

type noteWriter interface {
	WriteCell(ctx context.Context, locator string, row, col int, value string) error
}

type studentFinder interface {
	Find(ctx context.Context, name string) (models.Student, error)
}

// DiaryService owns the per-student detail cache and the note write path.
// The cache is correctness-sensitive: a note the teacher just saved must
// never be shadowed by a stale entry, so every successful write invalidates
// that student's cached book before returning.
type DiaryService struct {
	roster    studentFinder
	reader    diaryReader
	writer    noteWriter
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDiaryService constructs a DiaryService.
func NewDiaryService(roster studentFinder, reader diaryReader, writer noteWriter, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *DiaryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiaryService{roster: roster, reader: reader, writer: writer, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

func detailCacheKey(name string) string {
	return fmt.Sprintf("detail:%s", name)
}

// Detail returns a student's full diary history, served from the detail
// cache when present.
func (s *DiaryService) Detail(ctx context.Context, name string) (*dto.StudentDetailResponse, bool, error) {
	book, hit, err := s.book(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return &dto.StudentDetailResponse{Name: name, Entries: book.Entries}, hit, nil
}

// History exposes the cached diary book for the analysis formatter.
func (s *DiaryService) History(ctx context.Context, name string) (*models.DiaryBook, error) {
	book, _, err := s.book(ctx, name)
	return book, err
}

// book is the get_or_load of the detail cache: no freshness check beyond
// explicit invalidation.
func (s *DiaryService) book(ctx context.Context, name string) (*models.DiaryBook, bool, error) {
	student, err := s.roster.Find(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if !sheets.ValidLocator(student.SourceLocator) {
		return nil, false, appErrors.Clone(appErrors.ErrInvalidLocator, fmt.Sprintf("locator for %q is not a valid sheet URL", name))
	}

	cacheKey := detailCacheKey(name)
	cached := &models.DiaryBook{}
	if hit, err := s.cache.Get(ctx, cacheKey, cached); err == nil && hit {
		return cached, true, nil
	}

	start := time.Now()
	book, err := s.reader.ReadRecords(ctx, student.SourceLocator)
	s.metrics.ObserveSheetRequest("read", err, time.Since(start))
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, cacheKey, book, 0); err != nil {
		s.logger.Warn("failed to cache diary book", zap.String("student", name), zap.Error(err))
	}
	return book, false, nil
}

// SaveNote writes the teacher note for one (student, date) pair. It refuses
// the write when there is nothing to change, resolves the storage cell from
// the cached book, writes exactly one cell, and invalidates the student's
// detail cache entry.
func (s *DiaryService) SaveNote(ctx context.Context, name string, req dto.SaveNoteRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}

	student, err := s.roster.Find(ctx, name)
	if err != nil {
		return err
	}

	book, _, err := s.book(ctx, name)
	if err != nil {
		return err
	}

	entry, found := book.Entries.FindByDate(req.Date)
	if !found {
		return appErrors.Clone(appErrors.ErrEntryNotFound, fmt.Sprintf("no diary entry on %s", req.Date))
	}

	// a blank note over a blank note is a meaningless write
	newNote := strings.TrimSpace(req.Note)
	if newNote == "" && (entry.TeacherNote == nil || strings.TrimSpace(*entry.TeacherNote) == "") {
		return appErrors.Clone(appErrors.ErrValidationEmpty, "")
	}

	row, ok := book.RowForDate(req.Date)
	if !ok {
		return appErrors.Clone(appErrors.ErrEntryNotFound, fmt.Sprintf("no diary entry on %s", req.Date))
	}

	start := time.Now()
	err = s.writer.WriteCell(ctx, student.SourceLocator, row, book.NoteColumn(), newNote)
	s.metrics.ObserveSheetRequest("write", err, time.Since(start))
	if err != nil {
		return err
	}

	if err := s.InvalidateStudent(ctx, name); err != nil {
		// the write landed but the cached book is now stale
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "note saved but cache invalidation failed")
	}

	s.logger.Info("teacher note saved", zap.String("student", name), zap.String("date", req.Date))
	return nil
}

// InvalidateStudent evicts one student's detail cache entry.
func (s *DiaryService) InvalidateStudent(ctx context.Context, name string) error {
	return s.cache.Invalidate(ctx, detailCacheKey(name))
}

// InvalidateAll clears the whole detail cache.
func (s *DiaryService) InvalidateAll(ctx context.Context) error {
	return s.cache.Invalidate(ctx, "detail:*")
}
