package service

import (
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/report-card-api/internal/grading"
	"github.com/noah-isme/report-card-api/internal/models"
	"github.com/noah-isme/report-card-api/internal/upload"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
)

type resultStore interface {
	Results() []models.ResultEntry
	FindResultByName(name string) (models.ResultEntry, bool)
	UpsertResult(entry models.ResultEntry) error
	FindAccountByUsername(username string) (models.Account, bool)
	NextAccountID() int
	AddAccount(account models.Account) error
	FindProfileByName(name string) (models.Profile, bool)
	SaveProfile(profile models.Profile) error
}

// ScoreRow is one subject row as submitted by the teacher. Scores arrive as
// strings and are coerced during grading; anything non-numeric counts as zero.
type ScoreRow struct {
	Subject string `json:"subject" validate:"required"`
	CA1     string `json:"ca1"`
	CA2     string `json:"ca2"`
	Exam    string `json:"exam"`
}

// SaveResultsRequest is the payload for recording a student's results.
type SaveResultsRequest struct {
	StudentName string     `json:"student_name" validate:"required"`
	Rows        []ScoreRow `json:"rows" validate:"required,min=1,dive"`
}

// SaveResultsResult reports what the save touched beyond the result entry
// itself: first-time saves also provision a login account and a blank profile.
type SaveResultsResult struct {
	Entry          models.ResultEntry `json:"entry"`
	AccountCreated bool               `json:"account_created"`
	ProfileCreated bool               `json:"profile_created"`
}

// ResultService grades and persists student results, and previews uploaded
// score sheets before anything is written.
type ResultService struct {
	store           resultStore
	defaultPassword string
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewResultService wires the result service. defaultPassword is assigned to
// accounts auto-created on first save.
func NewResultService(store resultStore, defaultPassword string, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{
		store:           store,
		defaultPassword: defaultPassword,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Preview parses an uploaded .xlsx score sheet and grades it without saving.
// The returned entry is exactly what Save would persist for the same rows.
func (s *ResultService) Preview(r io.Reader) (*models.ResultEntry, error) {
	sheet, err := upload.Parse(r)
	if err != nil {
		var missing *upload.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, apperrors.Wrap(err, apperrors.ErrMissingColumns.Code, apperrors.ErrMissingColumns.Status, missing.Error())
		}
		return nil, apperrors.Wrap(err, apperrors.ErrUploadFailed.Code, apperrors.ErrUploadFailed.Status, apperrors.ErrUploadFailed.Message)
	}

	scores := grading.Score(sheet.Rows)
	return &models.ResultEntry{
		StudentName: sheet.StudentName,
		TotalScore:  grading.Total(scores),
		Results:     scores,
	}, nil
}

// Save grades the submitted rows server-side and upserts the student's result
// entry. A student saved for the first time also gets a login account with the
// default password and an empty profile shell.
func (s *ResultService) Save(req SaveResultsRequest) (*SaveResultsResult, error) {
	req.StudentName = strings.TrimSpace(req.StudentName)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "student name and at least one subject row are required")
	}

	rows := make([]grading.RawRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, grading.RawRow{Subject: r.Subject, CA1: r.CA1, CA2: r.CA2, Exam: r.Exam})
	}

	scores := grading.Score(rows)
	entry := models.ResultEntry{
		StudentName: req.StudentName,
		TotalScore:  grading.Total(scores),
		Results:     scores,
	}

	if existing, ok := s.store.FindResultByName(req.StudentName); ok {
		// Keep the canonical casing from the first save.
		entry.StudentName = existing.StudentName
	}
	if err := s.store.UpsertResult(entry); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not save results")
	}

	out := &SaveResultsResult{Entry: entry}

	if _, ok := s.store.FindAccountByUsername(entry.StudentName); !ok {
		account := models.Account{
			ID:       s.store.NextAccountID(),
			Username: entry.StudentName,
			Password: s.defaultPassword,
		}
		if err := s.store.AddAccount(account); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not create student account")
		}
		out.AccountCreated = true
		s.logger.Info("created account for new student", zap.String("username", account.Username), zap.Int("id", account.ID))
	}

	if _, ok := s.store.FindProfileByName(entry.StudentName); !ok {
		if err := s.store.SaveProfile(models.Profile{StudentName: entry.StudentName}); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not create student profile")
		}
		out.ProfileCreated = true
	}

	return out, nil
}

// List returns every recorded result entry.
func (s *ResultService) List() []models.ResultEntry {
	return s.store.Results()
}
