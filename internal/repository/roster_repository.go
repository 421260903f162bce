package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/sheets"
)

// Column labels required in the roster sheet's header row.
const (
	rosterNameColumn    = "name"
	rosterLocatorColumn = "source_locator"
)

// RosterRepository reads the student roster from its spreadsheet.
type RosterRepository struct {
	client  sheets.Client
	locator string
	logger  *zap.Logger
}

// NewRosterRepository constructs a roster repository bound to the roster
// sheet locator.
func NewRosterRepository(client sheets.Client, locator string, logger *zap.Logger) *RosterRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterRepository{client: client, locator: locator, logger: logger}
}

// Load fetches every roster row in source order. Unlike diary sheets the
// roster is header-addressed: the first row must name both required columns.
func (r *RosterRepository) Load(ctx context.Context) ([]models.Student, error) {
	if r.locator == "" {
		return nil, appErrors.Clone(appErrors.ErrRosterUnavailable, "roster sheet locator not configured")
	}

	rows, err := r.client.ReadAll(ctx, r.locator)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRosterUnavailable.Code, appErrors.ErrRosterUnavailable.Status, appErrors.ErrRosterUnavailable.Message)
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrRosterUnavailable, "roster sheet is empty")
	}

	nameIdx, locatorIdx, err := rosterColumns(rows[0])
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRosterUnavailable.Code, appErrors.ErrRosterUnavailable.Status, appErrors.ErrRosterUnavailable.Message)
	}

	students := make([]models.Student, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cellAt(row, nameIdx)
		if name == "" {
			continue
		}
		students = append(students, models.Student{
			Name:          name,
			SourceLocator: cellAt(row, locatorIdx),
		})
	}

	r.logger.Debug("roster loaded", zap.Int("students", len(students)))
	return students, nil
}

func rosterColumns(header []string) (nameIdx, locatorIdx int, err error) {
	nameIdx, locatorIdx = -1, -1
	for i, label := range header {
		switch strings.TrimSpace(label) {
		case rosterNameColumn:
			nameIdx = i
		case rosterLocatorColumn:
			locatorIdx = i
		}
	}
	if nameIdx < 0 || locatorIdx < 0 {
		return 0, 0, fmt.Errorf("roster header missing required columns %q and %q", rosterNameColumn, rosterLocatorColumn)
	}
	return nameIdx, locatorIdx, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
