// Package grading turns raw per-subject scores into graded subject rows and
// ranks students by total score.
package grading

import (
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/report-card-api/internal/models"
)

// RawRow is one ungraded subject row as it arrives from an upload or API
// payload. Score fields are kept as strings so that unparsable values can be
// coerced to zero instead of rejected.
type RawRow struct {
	Subject string
	CA1     string
	CA2     string
	Exam    string
}

// Score grades the given rows. Final is always recomputed as CA1+CA2+Exam;
// any incoming Final is ignored. An empty input yields an empty (non-nil)
// slice.
func Score(rows []RawRow) []models.SubjectScore {
	scores := make([]models.SubjectScore, 0, len(rows))
	for _, row := range rows {
		ca1 := coerce(row.CA1)
		ca2 := coerce(row.CA2)
		exam := coerce(row.Exam)
		final := ca1 + ca2 + exam
		grade, remark := gradeRemark(final)
		scores = append(scores, models.SubjectScore{
			Subject: strings.TrimSpace(row.Subject),
			CA1:     ca1,
			CA2:     ca2,
			Exam:    exam,
			Final:   final,
			Grade:   grade,
			Remark:  remark,
		})
	}
	return scores
}

// Total sums the Final column.
func Total(scores []models.SubjectScore) float64 {
	var total float64
	for _, s := range scores {
		total += s.Final
	}
	return total
}

// Rank assigns each student a 1-based position in descending order of total
// score. Ties are broken stably: entries keep their collection order, so two
// students on the same total receive consecutive distinct ranks.
func Rank(entries []models.ResultEntry) map[string]int {
	ordered := make([]models.ResultEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TotalScore > ordered[j].TotalScore
	})
	ranks := make(map[string]int, len(ordered))
	for i, entry := range ordered {
		ranks[strings.ToLower(entry.StudentName)] = i + 1
	}
	return ranks
}

// RankOf returns the rank for one student name (case-insensitive) and whether
// the student has a result entry at all.
func RankOf(entries []models.ResultEntry, name string) (int, bool) {
	rank, ok := Rank(entries)[strings.ToLower(name)]
	return rank, ok
}

// Ordinal renders n as an English ordinal: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// coerce parses a score cell, treating anything unparsable as zero. Bad input
// is a silent zero score, not an error.
func coerce(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

func gradeRemark(final float64) (string, string) {
	switch {
	case final >= 75:
		return "A", "Excellent"
	case final >= 60:
		return "B", "Very Good"
	case final >= 50:
		return "C", "Credit"
	default:
		return "F", "Failed"
	}
}
