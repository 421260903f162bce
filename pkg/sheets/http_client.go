package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/pkg/config"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

const readRange = "A1:Z"

// HTTPClient talks to the spreadsheet values API over REST.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient builds a client from the sheets configuration.
func NewHTTPClient(cfg config.SheetsConfig, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.APIToken,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

// ReadAll fetches every row of the first worksheet in one call.
func (c *HTTPClient) ReadAll(ctx context.Context, locator string) ([][]string, error) {
	id, err := SpreadsheetID(locator)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidLocator.Code, appErrors.ErrInvalidLocator.Status, appErrors.ErrInvalidLocator.Message)
	}

	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s?majorDimension=ROWS", c.baseURL, id, url.PathEscape(readRange))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build sheet read request")
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnreachable.Code, appErrors.ErrSourceUnreachable.Status, "sheet read failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := c.statusError(resp, "read", locator); err != nil {
		return nil, err
	}

	var payload valueRange
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnreachable.Code, appErrors.ErrSourceUnreachable.Status, "decode sheet response")
	}

	return payload.Values, nil
}

// UpdateCell writes exactly one cell using RAW input semantics.
func (c *HTTPClient) UpdateCell(ctx context.Context, locator string, row, col int, value string) error {
	id, err := SpreadsheetID(locator)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidLocator.Code, appErrors.ErrInvalidLocator.Status, appErrors.ErrInvalidLocator.Message)
	}

	body, err := json.Marshal(valueRange{Values: [][]string{{value}}})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode cell update")
	}

	ref := CellRef(row, col)
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s?valueInputOption=RAW", c.baseURL, id, url.PathEscape(ref))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build cell update request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSourceUnreachable.Code, appErrors.ErrSourceUnreachable.Status, "cell update failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := c.statusError(resp, "update", locator); err != nil {
		return err
	}

	c.logger.Debug("sheet cell updated", zap.String("cell", ref))
	return nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *HTTPClient) statusError(resp *http.Response, op, locator string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err := fmt.Errorf("sheet %s returned %d: %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return appErrors.Wrap(err, appErrors.ErrRateLimited.Code, appErrors.ErrRateLimited.Status, appErrors.ErrRateLimited.Message)
	case http.StatusNotFound, http.StatusForbidden, http.StatusUnauthorized:
		return appErrors.Wrap(err, appErrors.ErrSourceUnreachable.Code, appErrors.ErrSourceUnreachable.Status, appErrors.ErrSourceUnreachable.Message)
	default:
		c.logger.Warn("unexpected sheet backend status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("locator", locator))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unexpected sheet backend error")
	}
}
