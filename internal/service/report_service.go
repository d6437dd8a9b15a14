package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/report-card-api/internal/grading"
	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/export"
)

type reportStore interface {
	Results() []models.ResultEntry
	FindResultByName(name string) (models.ResultEntry, bool)
	FindProfileByName(name string) (models.Profile, bool)
}

type cardRenderer interface {
	Render(data export.ReportCardData) ([]byte, error)
}

type broadsheetRenderer interface {
	Render(entries []models.ResultEntry, ranks map[string]string) ([]byte, error)
}

// ReportObserver counts generated reports. Satisfied by the metrics service;
// optional.
type ReportObserver interface {
	ObserveReport(format string)
}

// ReportService assembles report cards and the class broadsheet.
type ReportService struct {
	store       reportStore
	pdf         cardRenderer
	csv         broadsheetRenderer
	observer    ReportObserver
	schoolName  string
	schoolMotto string
	logger      *zap.Logger
}

// NewReportService wires the report service.
func NewReportService(store reportStore, pdf cardRenderer, csv broadsheetRenderer, observer ReportObserver, schoolName, schoolMotto string, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		store:       store,
		pdf:         pdf,
		csv:         csv,
		observer:    observer,
		schoolName:  schoolName,
		schoolMotto: schoolMotto,
		logger:      logger,
	}
}

// Card builds the full report card for a student: graded results, profile
// when one exists, and the class rank among all recorded entries. A student
// with no recorded results has no card.
func (s *ReportService) Card(name string) (*models.ReportCard, error) {
	entry, ok := s.store.FindResultByName(name)
	if !ok {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "no results recorded for this student")
	}

	// Missing profile is fine; the card renders with blank bio-data.
	profile, _ := s.store.FindProfileByName(entry.StudentName)

	entries := s.store.Results()
	rank, _ := grading.RankOf(entries, entry.StudentName)

	return &models.ReportCard{
		Profile:   profile,
		Entry:     entry,
		Rank:      rank,
		RankLabel: grading.Ordinal(rank),
		ClassSize: len(entries),
	}, nil
}

// CardPDF renders the student's report card as PDF bytes plus a suggested
// download filename.
func (s *ReportService) CardPDF(name string) ([]byte, string, error) {
	card, err := s.Card(name)
	if err != nil {
		return nil, "", err
	}

	out, err := s.pdf.Render(export.ReportCardData{
		SchoolName:  s.schoolName,
		SchoolMotto: s.schoolMotto,
		Card:        *card,
	})
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not render report card")
	}

	if s.observer != nil {
		s.observer.ObserveReport("pdf")
	}
	s.logger.Info("report card rendered", zap.String("student", card.Entry.StudentName), zap.Int("bytes", len(out)))

	filename := fmt.Sprintf("report_card_%s.pdf", slugify(card.Entry.StudentName))
	return out, filename, nil
}

// Broadsheet renders every result entry with rank labels as CSV.
func (s *ReportService) Broadsheet() ([]byte, error) {
	entries := s.store.Results()

	ranks := make(map[string]string, len(entries))
	for _, entry := range entries {
		if rank, ok := grading.RankOf(entries, entry.StudentName); ok {
			ranks[strings.ToLower(entry.StudentName)] = grading.Ordinal(rank)
		}
	}

	out, err := s.csv.Render(entries, ranks)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "could not render broadsheet")
	}
	if s.observer != nil {
		s.observer.ObserveReport("csv")
	}
	return out, nil
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}
