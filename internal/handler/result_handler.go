package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/report-card-api/internal/models"
	"github.com/noah-isme/report-card-api/internal/service"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/response"
)

type resultService interface {
	Preview(r io.Reader) (*models.ResultEntry, error)
	Save(req service.SaveResultsRequest) (*service.SaveResultsResult, error)
	List() []models.ResultEntry
}

// ResultHandler exposes the teacher's result workflow: upload a score sheet
// for preview, save graded results, and list everything recorded.
type ResultHandler struct {
	service resultService
}

// NewResultHandler builds the handler.
func NewResultHandler(service resultService) *ResultHandler {
	return &ResultHandler{service: service}
}

// Upload parses an .xlsx score sheet from a multipart form and returns the
// graded preview without persisting anything.
func (h *ResultHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "a file field named 'file' is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrUploadFailed.Code, apperrors.ErrUploadFailed.Status, apperrors.ErrUploadFailed.Message))
		return
	}
	defer src.Close()

	preview, err := h.service.Preview(src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview)
}

// Save records the submitted rows as the student's result entry. Scores are
// regraded server-side; client-supplied totals are ignored.
func (h *ResultHandler) Save(c *gin.Context) {
	var req service.SaveResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid results payload"))
		return
	}

	out, err := h.service.Save(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

// List returns every recorded result entry.
func (h *ResultHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List())
}
