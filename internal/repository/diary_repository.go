package repository

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/models"
	"github.com/noah-isme/maum-diary-api/pkg/sheets"
)

// DiaryRepository reads and writes individual student diary sheets.
type DiaryRepository struct {
	client sheets.Client
	logger *zap.Logger
}

// NewDiaryRepository constructs a diary repository.
func NewDiaryRepository(client sheets.Client, logger *zap.Logger) *DiaryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiaryRepository{client: client, logger: logger}
}

// ReadRecords loads a student's whole diary sheet in one call. The first two
// rows (config, header) are never parsed as data; remaining rows map
// positionally onto models.EntryFields; short rows yield nil trailing
// fields and extra cells are ignored.
func (r *DiaryRepository) ReadRecords(ctx context.Context, locator string) (*models.DiaryBook, error) {
	rows, err := r.client.ReadAll(ctx, locator)
	if err != nil {
		return nil, err
	}

	book := &models.DiaryBook{}
	if len(rows) > models.HeaderRowIndex {
		book.Header = rows[models.HeaderRowIndex]
	}
	if len(rows) > 2 {
		book.RawRows = rows[2:]
	}

	book.Entries = make(models.Entries, 0, len(book.RawRows))
	for _, row := range book.RawRows {
		book.Entries = append(book.Entries, entryFromRow(row))
	}

	r.logger.Debug("diary records read", zap.Int("entries", len(book.Entries)))
	return book, nil
}

// WriteCell writes exactly one cell of a student sheet. Row and column are
// 1-based; position resolution (date row, note column) happens in the
// service against the cached diary book.
func (r *DiaryRepository) WriteCell(ctx context.Context, locator string, row, col int, value string) error {
	return r.client.UpdateCell(ctx, locator, row, col, value)
}

func entryFromRow(row []string) models.DiaryEntry {
	entry := models.DiaryEntry{}
	if len(row) > 0 {
		entry.Date = strings.TrimSpace(row[0])
	}
	entry.Emotion = optionalField(row, 1)
	entry.Gratitude = optionalField(row, 2)
	entry.Message = optionalField(row, 3)
	entry.TeacherNote = optionalField(row, 4)
	return entry
}

// optionalField returns nil for absent or blank cells so every read site
// sees the same sentinel for "no value".
func optionalField(row []string, idx int) *string {
	if idx >= len(row) {
		return nil
	}
	value := strings.TrimSpace(row[idx])
	if value == "" {
		return nil
	}
	return &value
}
