package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

type fakeAnalysisSrv struct {
	res      *dto.AnalysisResponse
	err      error
	lastName string
	lastDate string
	history  int
}

func (f *fakeAnalysisSrv) AnalyzeEntry(_ context.Context, name, date string) (*dto.AnalysisResponse, error) {
	f.lastName = name
	f.lastDate = date
	return f.res, f.err
}

func (f *fakeAnalysisSrv) AnalyzeHistory(_ context.Context, name string) (*dto.AnalysisResponse, error) {
	f.lastName = name
	f.history++
	return f.res, f.err
}

func TestAnalysisHandlerEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAnalysisSrv{res: &dto.AnalysisResponse{Name: "지민", Report: "안정적인 하루였습니다."}}
	h := NewAnalysisHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students/지민/analysis", strings.NewReader(`{"date":"2024-05-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "name", Value: "지민"}}

	h.Entry(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "지민", srv.lastName)
	assert.Equal(t, "2024-05-01", srv.lastDate)
}

func TestAnalysisHandlerEntryRejectsBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAnalysisSrv{}
	h := NewAnalysisHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students/지민/analysis", strings.NewReader(`{"date":"05/01/2024"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "name", Value: "지민"}}

	h.Entry(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.lastDate)
}

func TestAnalysisHandlerEntryUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAnalysisHandler(&fakeAnalysisSrv{err: appErrors.ErrAnalysisUnavailable})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students/지민/analysis", strings.NewReader(`{"date":"2024-05-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "name", Value: "지민"}}

	h.Entry(c)

	assert.Equal(t, appErrors.ErrAnalysisUnavailable.Status, rec.Code)
}

func TestAnalysisHandlerHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAnalysisSrv{res: &dto.AnalysisResponse{Name: "지민", Report: "전반적으로 긍정적입니다."}}
	h := NewAnalysisHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students/지민/analysis/history", nil)
	c.Params = gin.Params{{Key: "name", Value: "지민"}}

	h.History(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, srv.history)
	assert.Contains(t, rec.Body.String(), "긍정적")
}
