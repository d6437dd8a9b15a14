package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/report-card-api/internal/models"
	"github.com/noah-isme/report-card-api/internal/service"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
)

type mockResultService struct {
	preview    *models.ResultEntry
	previewErr error
	saved      *service.SaveResultsResult
	saveErr    error
	entries    []models.ResultEntry
	lastSave   service.SaveResultsRequest
}

func (m *mockResultService) Preview(io.Reader) (*models.ResultEntry, error) {
	return m.preview, m.previewErr
}

func (m *mockResultService) Save(req service.SaveResultsRequest) (*service.SaveResultsResult, error) {
	m.lastSave = req
	return m.saved, m.saveErr
}

func (m *mockResultService) List() []models.ResultEntry { return m.entries }

func multipartUpload(t *testing.T, field, filename string, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodPost, "/results/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	return c, rec
}

func TestUploadHandler(t *testing.T) {
	h := NewResultHandler(&mockResultService{preview: &models.ResultEntry{
		StudentName: "Chinedu",
		TotalScore:  78,
		Results: []models.SubjectScore{
			{Subject: "Mathematics", CA1: 20, CA2: 18, Exam: 40, Final: 78, Grade: "A", Remark: "Excellent"},
		},
	}})

	c, rec := multipartUpload(t, "file", "scores.xlsx", []byte("workbook bytes"))
	h.Upload(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"student_name":"Chinedu"`)
	assert.Contains(t, rec.Body.String(), `"Grade":"A"`)
}

func TestUploadHandlerMissingFile(t *testing.T) {
	h := NewResultHandler(&mockResultService{})

	c, rec := multipartUpload(t, "wrong_field", "scores.xlsx", []byte("x"))
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandlerMissingColumns(t *testing.T) {
	h := NewResultHandler(&mockResultService{
		previewErr: apperrors.Clone(apperrors.ErrMissingColumns, "missing required columns: CA2, Exam"),
	})

	c, rec := multipartUpload(t, "file", "scores.xlsx", []byte("x"))
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_COLUMNS")
}

func TestSaveHandler(t *testing.T) {
	svc := &mockResultService{saved: &service.SaveResultsResult{
		Entry:          models.ResultEntry{StudentName: "Chinedu", TotalScore: 78},
		AccountCreated: true,
		ProfileCreated: true,
	}}
	h := NewResultHandler(svc)

	body, _ := json.Marshal(service.SaveResultsRequest{
		StudentName: "Chinedu",
		Rows:        []service.ScoreRow{{Subject: "Mathematics", CA1: "20", CA2: "18", Exam: "40"}},
	})
	c, rec := newGinContext(http.MethodPost, "/results", body)
	h.Save(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chinedu", svc.lastSave.StudentName)
	assert.Contains(t, rec.Body.String(), `"account_created":true`)
}

func TestListResultsHandler(t *testing.T) {
	h := NewResultHandler(&mockResultService{entries: []models.ResultEntry{
		{StudentName: "Adams", TotalScore: 160},
	}})

	c, rec := newGinContext(http.MethodGet, "/results", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_score":160`)
}
