package handler

import (
	"context"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/maum-diary-api/internal/dto"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
	"github.com/noah-isme/maum-diary-api/pkg/response"
)

type exportService interface {
	ExportDaily(ctx context.Context, date, format string) (*dto.ExportResponse, error)
	OpenDownload(token string) (*os.File, string, error)
}

// ExportHandler renders daily summary exports and serves signed downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Daily renders the overview for one date as CSV or PDF.
func (h *ExportHandler) Daily(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	format := c.DefaultQuery("format", "csv")

	res, err := h.service.ExportDaily(c.Request.Context(), date, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Download streams a previously rendered export. The signed token is the
// only credential; the route stays outside the JWT group so the link works
// straight from a browser.
func (h *ExportHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	file, relPath, err := h.service.OpenDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stat export file"))
		return
	}

	filename := path.Base(relPath)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	contentType := "text/csv"
	if strings.HasSuffix(filename, ".pdf") {
		contentType = "application/pdf"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
