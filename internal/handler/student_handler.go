package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	"github.com/noah-isme/maum-diary-api/internal/middleware"
	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/response"
)

type rosterService interface {
	Students(ctx context.Context) ([]models.Student, error)
}

type diaryService interface {
	Detail(ctx context.Context, name string) (*dto.StudentDetailResponse, bool, error)
	SaveNote(ctx context.Context, name string, req dto.SaveNoteRequest) error
}

// StudentHandler exposes roster and per-student diary endpoints.
type StudentHandler struct {
	roster  rosterService
	diaries diaryService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(roster rosterService, diaries diaryService) *StudentHandler {
	return &StudentHandler{roster: roster, diaries: diaries}
}

// List returns the roster in source order.
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.roster.Students(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"students": students})
}

// Diary serves one student's full record history.
func (h *StudentHandler) Diary(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student name is required"))
		return
	}

	start := time.Now()
	detail, cacheHit, err := h.diaries.Detail(c.Request.Context(), name)
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
	response.JSON(c, http.StatusOK, detail, meta)
}

// SaveNote writes a teacher note onto one diary entry.
func (h *StudentHandler) SaveNote(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student name is required"))
		return
	}

	var req dto.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid note payload"))
		return
	}

	if err := h.diaries.SaveNote(c.Request.Context(), name, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"saved": true})
}
