package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/export"
	"github.com/noah-isme/maum-diary-api/pkg/storage"
)

// Export formats supported for daily summary downloads.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type overviewProvider interface {
	DailyOverview(ctx context.Context, date string) (*dto.DailyOverviewResponse, bool, error)
}

type exportStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

// ExportService renders a day's summaries to CSV or PDF, stores the file,
// and hands out signed download tokens.
type ExportService struct {
	summaries overviewProvider
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	store     exportStore
	signer    *storage.SignedURLSigner
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(summaries overviewProvider, store exportStore, signer *storage.SignedURLSigner, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		summaries: summaries,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		store:     store,
		signer:    signer,
		logger:    logger,
	}
}

// ExportDaily renders and stores the overview for one date, returning a
// signed download reference.
func (s *ExportService) ExportDaily(ctx context.Context, date, format string) (*dto.ExportResponse, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	overview, _, err := s.summaries.DailyOverview(ctx, date)
	if err != nil {
		return nil, err
	}

	data := summaryDataset(overview)

	var rendered []byte
	switch format {
	case FormatCSV:
		rendered, err = s.csv.Render(data)
	case FormatPDF:
		rendered, err = s.pdf.Render(data, fmt.Sprintf("Daily summary %s", date))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render export")
	}

	fileID := uuid.NewString()
	relPath := fmt.Sprintf("daily/%s-%s.%s", date, fileID, format)
	if _, err := s.store.Save(relPath, rendered); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store export")
	}

	token, expiresAt, err := s.signer.Generate(fileID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign export url")
	}

	s.logger.Info("daily export rendered", zap.String("date", date), zap.String("format", format))
	return &dto.ExportResponse{
		FileID:      fileID,
		Format:      format,
		DownloadURL: "/exports/download?token=" + token,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

// OpenDownload validates a signed token and opens the referenced file.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file not found")
	}
	return file, relPath, nil
}

func summaryDataset(overview *dto.DailyOverviewResponse) export.Dataset {
	rows := make([][]string, 0, len(overview.Summaries))
	for _, summary := range overview.Summaries {
		rows = append(rows, []string{
			summary.Name,
			deref(summary.Emotion),
			deref(summary.Message),
			summary.Error,
		})
	}
	return export.Dataset{
		Headers: []string{"name", "emotion", "message", "error"},
		Rows:    rows,
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
