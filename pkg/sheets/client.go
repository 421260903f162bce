package sheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Client is the narrow surface this system needs from the tabular backend:
// read one whole worksheet, write one cell. Everything else about the
// spreadsheet service stays outside the module boundary.
type Client interface {
	// ReadAll returns every row of the first worksheet of the spreadsheet
	// behind locator, top to bottom, untrimmed.
	ReadAll(ctx context.Context, locator string) ([][]string, error)
	// UpdateCell writes a single cell addressed by 1-based row and column.
	UpdateCell(ctx context.Context, locator string, row, col int, value string) error
}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// ValidLocator reports whether the locator is syntactically a sheet URL.
// The check is local; it never touches the network.
func ValidLocator(locator string) bool {
	if !strings.HasPrefix(locator, "http://") && !strings.HasPrefix(locator, "https://") {
		return false
	}
	return spreadsheetIDPattern.MatchString(locator)
}

// SpreadsheetID extracts the document ID from a sheet URL.
func SpreadsheetID(locator string) (string, error) {
	m := spreadsheetIDPattern.FindStringSubmatch(locator)
	if m == nil {
		return "", fmt.Errorf("locator %q does not contain a spreadsheet id", locator)
	}
	return m[1], nil
}

// CellRef renders a 1-based (row, col) pair in A1 notation.
func CellRef(row, col int) string {
	return columnName(col) + fmt.Sprintf("%d", row)
}

func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
