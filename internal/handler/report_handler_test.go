package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/report-card-api/internal/middleware"
	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
)

type mockReportService struct {
	card     *models.ReportCard
	cardErr  error
	pdf      []byte
	filename string
	csv      []byte
}

func (m *mockReportService) Card(string) (*models.ReportCard, error) {
	return m.card, m.cardErr
}

func (m *mockReportService) CardPDF(string) ([]byte, string, error) {
	if m.cardErr != nil {
		return nil, "", m.cardErr
	}
	return m.pdf, m.filename, nil
}

func (m *mockReportService) Broadsheet() ([]byte, error) {
	return m.csv, nil
}

func TestMyReport(t *testing.T) {
	h := NewReportHandler(&mockReportService{card: &models.ReportCard{
		Entry:     models.ResultEntry{StudentName: "Adams", TotalScore: 160},
		Rank:      1,
		RankLabel: "1st",
		ClassSize: 3,
	}})

	c, rec := newGinContext(http.MethodGet, "/me/report", nil)
	c.Set(middleware.ClaimsContextKey, &models.JWTClaims{Username: "Adams", Role: models.RoleStudent})
	h.MyReport(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rank_label":"1st"`)
}

func TestMyReportNoResults(t *testing.T) {
	h := NewReportHandler(&mockReportService{cardErr: apperrors.Clone(apperrors.ErrNotFound, "no results recorded for this student")})

	c, rec := newGinContext(http.MethodGet, "/me/report", nil)
	c.Set(middleware.ClaimsContextKey, &models.JWTClaims{Username: "Ngozi", Role: models.RoleStudent})
	h.MyReport(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMyReportUnauthenticated(t *testing.T) {
	h := NewReportHandler(&mockReportService{})

	c, rec := newGinContext(http.MethodGet, "/me/report", nil)
	h.MyReport(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMyReportPDF(t *testing.T) {
	h := NewReportHandler(&mockReportService{pdf: []byte("%PDF-1.4 fake"), filename: "report_card_adams.pdf"})

	c, rec := newGinContext(http.MethodGet, "/me/report/pdf", nil)
	c.Set(middleware.ClaimsContextKey, &models.JWTClaims{Username: "Adams", Role: models.RoleStudent})
	h.MyReportPDF(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report_card_adams.pdf")
	assert.Equal(t, "%PDF-1.4 fake", rec.Body.String())
}

func TestBroadsheetCSV(t *testing.T) {
	h := NewReportHandler(&mockReportService{csv: []byte("Student,Subject\nAdams,Mathematics\n")})

	c, rec := newGinContext(http.MethodGet, "/export/results.csv", nil)
	h.BroadsheetCSV(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "results_broadsheet.csv")
	assert.Contains(t, rec.Body.String(), "Adams,Mathematics")
}
