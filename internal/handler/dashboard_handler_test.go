package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

type fakeOverviewSrv struct {
	overview *dto.DailyOverviewResponse
	hit      bool
	err      error
	lastDate string
}

func (f *fakeOverviewSrv) DailyOverview(_ context.Context, date string) (*dto.DailyOverviewResponse, bool, error) {
	f.lastDate = date
	return f.overview, f.hit, f.err
}

type fakeSessionSrv struct {
	calls int
	err   error
}

func (f *fakeSessionSrv) ResetSession(context.Context) error {
	f.calls++
	return f.err
}

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

func TestDashboardHandlerDailySuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeOverviewSrv{
		overview: &dto.DailyOverviewResponse{Date: "2024-05-02", Summaries: []models.DailySummary{{Name: "A"}}},
		hit:      true,
	}
	h := NewDashboardHandler(srv, &fakeSessionSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/daily?date=2024-05-02", nil)

	h.Daily(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-05-02", srv.lastDate)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Equal(t, "2024-05-02", envelope.Data["date"])
}

func TestDashboardHandlerDailyDefaultsToToday(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeOverviewSrv{overview: &dto.DailyOverviewResponse{}}
	h := NewDashboardHandler(srv, &fakeSessionSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/daily", nil)

	h.Daily(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, srv.lastDate)
}

func TestDashboardHandlerDailyPropagatesError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeOverviewSrv{err: appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")}
	h := NewDashboardHandler(srv, &fakeSessionSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/daily?date=bogus", nil)

	h.Daily(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardHandlerRefresh(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := &fakeSessionSrv{}
	h := NewDashboardHandler(&fakeOverviewSrv{}, sessions)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil)

	h.Refresh(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, sessions.calls)
}

func TestDashboardHandlerRefreshError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := &fakeSessionSrv{err: appErrors.ErrInternal}
	h := NewDashboardHandler(&fakeOverviewSrv{}, sessions)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil)

	h.Refresh(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
