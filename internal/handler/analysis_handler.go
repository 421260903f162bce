package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/response"
)

type analysisService interface {
	AnalyzeEntry(ctx context.Context, name, date string) (*dto.AnalysisResponse, error)
	AnalyzeHistory(ctx context.Context, name string) (*dto.AnalysisResponse, error)
}

// AnalysisHandler exposes the on-demand analysis endpoints.
type AnalysisHandler struct {
	service analysisService
}

// NewAnalysisHandler constructs AnalysisHandler.
func NewAnalysisHandler(svc analysisService) *AnalysisHandler {
	return &AnalysisHandler{service: svc}
}

// Entry analyzes a single day's record for one student.
func (h *AnalysisHandler) Entry(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student name is required"))
		return
	}

	var req dto.AnalyzeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid analysis payload"))
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD"))
		return
	}

	res, err := h.service.AnalyzeEntry(c.Request.Context(), name, req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// History analyzes a student's cumulative record sequence.
func (h *AnalysisHandler) History(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student name is required"))
		return
	}

	res, err := h.service.AnalyzeHistory(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
