// Package upload parses the fixed-layout score spreadsheet teachers submit:
// student name in cell B2, subject table headers on row 9, data from row 10.
package upload

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/report-card-api/internal/grading"
)

const headerRowIndex = 8 // row 9, zero-based

// requiredColumns maps normalised header text to the canonical column name
// reported back to the user. "CA 1" and "CA1" normalise to the same key.
var requiredColumns = []struct {
	normalised string
	canonical  string
}{
	{"subject", "Subject"},
	{"ca1", "CA1"},
	{"ca2", "CA2"},
	{"exam", "Exam"},
}

// ParsedSheet is the outcome of a successful upload parse. Score cells stay
// raw strings; numeric coercion is the grading engine's job.
type ParsedSheet struct {
	StudentName string
	Rows        []grading.RawRow
}

// MissingColumnsError reports which required columns the sheet lacks. The
// upload is rejected as a whole; there is no partial import.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("spreadsheet is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Parse reads an .xlsx stream and extracts the student name and raw subject
// rows from the first sheet.
func Parse(r io.Reader) (*ParsedSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	name, err := f.GetCellValue(sheet, "B2")
	if err != nil {
		return nil, fmt.Errorf("read student name: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("could not find student name in cell B2")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= headerRowIndex {
		return nil, &MissingColumnsError{Missing: canonicalNames()}
	}

	columns, missing := mapHeaders(rows[headerRowIndex])
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	parsed := &ParsedSheet{StudentName: name, Rows: []grading.RawRow{}}
	for _, row := range rows[headerRowIndex+1:] {
		subject := strings.TrimSpace(cell(row, columns["Subject"]))
		if subject == "" {
			continue
		}
		parsed.Rows = append(parsed.Rows, grading.RawRow{
			Subject: subject,
			CA1:     cell(row, columns["CA1"]),
			CA2:     cell(row, columns["CA2"]),
			Exam:    cell(row, columns["Exam"]),
		})
	}
	return parsed, nil
}

// mapHeaders matches header cells case- and whitespace-insensitively against
// the required column set.
func mapHeaders(header []string) (map[string]int, []string) {
	normalised := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "")
		if key == "" {
			continue
		}
		if _, seen := normalised[key]; !seen {
			normalised[key] = i
		}
	}
	columns := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		idx, ok := normalised[col.normalised]
		if !ok {
			missing = append(missing, col.canonical)
			continue
		}
		columns[col.canonical] = idx
	}
	return columns, missing
}

func canonicalNames() []string {
	names := make([]string, 0, len(requiredColumns))
	for _, col := range requiredColumns {
		names = append(names, col.canonical)
	}
	return names
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
