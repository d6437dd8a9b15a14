package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/noah-isme/report-card-api/internal/models"
)

// Broadsheet renders the whole result set as CSV, one row per subject score,
// for the teacher's class-wide export.
type Broadsheet struct{}

// NewBroadsheet builds a broadsheet exporter.
func NewBroadsheet() *Broadsheet {
	return &Broadsheet{}
}

// Render produces CSV bytes. ranks maps lowercased student names to ordinal
// rank labels.
func (e *Broadsheet) Render(entries []models.ResultEntry, ranks map[string]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	header := []string{"Student", "Subject", "CA1", "CA2", "Exam", "Final", "Grade", "Remark", "Total", "Rank"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write broadsheet header: %w", err)
	}
	for _, entry := range entries {
		rank := ranks[strings.ToLower(entry.StudentName)]
		for _, s := range entry.Results {
			record := []string{
				entry.StudentName,
				s.Subject,
				trimFloat(s.CA1),
				trimFloat(s.CA2),
				trimFloat(s.Exam),
				trimFloat(s.Final),
				s.Grade,
				s.Remark,
				trimFloat(entry.TotalScore),
				rank,
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write broadsheet row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush broadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
