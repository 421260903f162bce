package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/maum-diary-api/pkg/config"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

const testLocator = "https://docs.google.com/spreadsheets/d/abc123_-XYZ/edit#gid=0"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewHTTPClient(config.SheetsConfig{
		BaseURL:  srv.URL,
		APIToken: "token-1",
		Timeout:  time.Second,
	}, nil)
	return client, srv
}

func TestValidLocator(t *testing.T) {
	assert.True(t, ValidLocator(testLocator))
	assert.False(t, ValidLocator("docs.google.com/spreadsheets/d/abc"))
	assert.False(t, ValidLocator("https://example.com/not-a-sheet"))
	assert.False(t, ValidLocator(""))
}

func TestSpreadsheetID(t *testing.T) {
	id, err := SpreadsheetID(testLocator)
	require.NoError(t, err)
	assert.Equal(t, "abc123_-XYZ", id)

	_, err = SpreadsheetID("https://example.com/none")
	assert.Error(t, err)
}

func TestCellRef(t *testing.T) {
	assert.Equal(t, "A1", CellRef(1, 1))
	assert.Equal(t, "E4", CellRef(4, 5))
	assert.Equal(t, "AA10", CellRef(10, 27))
}

func TestReadAllReturnsRows(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "/spreadsheets/abc123_-XYZ/values/")
		_ = json.NewEncoder(w).Encode(valueRange{Values: [][]string{
			{"config row"},
			{"date", "emotion", "gratitude", "message", "teacher_note"},
			{"2024-05-01", "긍정 - 신남", "고마워요"},
		}})
	})

	rows, err := client.ReadAll(context.Background(), testLocator)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-05-01", rows[2][0])
}

func TestReadAllIdempotent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(valueRange{Values: [][]string{{"a"}, {"b"}, {"c", "d"}}})
	})

	first, err := client.ReadAll(context.Background(), testLocator)
	require.NoError(t, err)
	second, err := client.ReadAll(context.Background(), testLocator)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReadAllClassifiesBackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   *appErrors.Error
	}{
		{"not found", http.StatusNotFound, appErrors.ErrSourceUnreachable},
		{"forbidden", http.StatusForbidden, appErrors.ErrSourceUnreachable},
		{"rate limited", http.StatusTooManyRequests, appErrors.ErrRateLimited},
		{"server error", http.StatusInternalServerError, appErrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.ReadAll(context.Background(), testLocator)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadAllRejectsMalformedLocator(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for malformed locator")
	})

	_, err := client.ReadAll(context.Background(), "https://example.com/none")
	assert.ErrorIs(t, err, appErrors.ErrInvalidLocator)
}

func TestUpdateCellWritesSingleCell(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody valueRange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateCell(context.Background(), testLocator, 4, 5, "잘 했어요")
	require.NoError(t, err)
	assert.Contains(t, gotPath, "/values/E4")
	assert.Contains(t, gotQuery, "valueInputOption=RAW")
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, []string{"잘 했어요"}, gotBody.Values[0])
}
