package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	"github.com/noah-isme/maum-diary-api/internal/middleware"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/response"
)

type overviewService interface {
	DailyOverview(ctx context.Context, date string) (*dto.DailyOverviewResponse, bool, error)
}

type sessionService interface {
	ResetSession(ctx context.Context) error
}

// DashboardHandler wires the daily overview and the refresh path to HTTP.
type DashboardHandler struct {
	summaries overviewService
	sessions  sessionService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(summaries overviewService, sessions sessionService) *DashboardHandler {
	return &DashboardHandler{summaries: summaries, sessions: sessions}
}

// Daily serves the aggregated overview for one date, defaulting to today.
func (h *DashboardHandler) Daily(c *gin.Context) {
	if h.summaries == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	start := time.Now()
	overview, cacheHit, err := h.summaries.DailyOverview(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, overview, meta)
}

// Refresh drops every session-scoped cache so the next reads hit the
// backend again.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.sessions.ResetSession(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"refreshed": true})
}
