package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/report-card-api/internal/middleware"
	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/response"
)

type reportService interface {
	Card(name string) (*models.ReportCard, error)
	CardPDF(name string) ([]byte, string, error)
	Broadsheet() ([]byte, error)
}

// ReportHandler serves the student's own report card and the teacher's
// class-wide broadsheet export.
type ReportHandler struct {
	service reportService
}

// NewReportHandler builds the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// MyReport returns the authenticated student's report card as JSON.
func (h *ReportHandler) MyReport(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	card, err := h.service.Card(claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card)
}

// MyReportPDF streams the authenticated student's report card as a PDF
// download.
func (h *ReportHandler) MyReportPDF(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	out, filename, err := h.service.CardPDF(claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

// BroadsheetCSV streams the full result set as a CSV download.
func (h *ReportHandler) BroadsheetCSV(c *gin.Context) {
	out, err := h.service.Broadsheet()
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="results_broadsheet.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}
