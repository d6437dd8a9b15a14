package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/report-card-api/internal/models"
)

func sampleCard() models.ReportCard {
	return models.ReportCard{
		Profile: models.Profile{
			StudentName: "Adams",
			Age:         14,
			RegNumber:   "UMC/2024/001",
			ParentName:  "Mr Adams",
			Session:     "2024/2025",
			Term:        "First Term",
		},
		Entry: models.ResultEntry{
			StudentName: "Adams",
			TotalScore:  168.5,
			Results: []models.SubjectScore{
				{Subject: "Mathematics", CA1: 18, CA2: 17, Exam: 50, Final: 85, Grade: "A", Remark: "Excellent"},
				{Subject: "English Language", CA1: 15, CA2: 14.5, Exam: 54, Final: 83.5, Grade: "A", Remark: "Excellent"},
			},
		},
		Rank:      1,
		RankLabel: "1st",
		ClassSize: 12,
	}
}

func TestReportCardPDFRenderWithoutAssets(t *testing.T) {
	exporter := NewReportCardPDF(nil)

	out, err := exporter.Render(ReportCardData{
		SchoolName:  "Unity Model College",
		SchoolMotto: "Knowledge and Character",
		Card:        sampleCard(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out[:8]), "%PDF"), "output should be a PDF document")
}

func TestReportCardPDFRenderEmptyProfile(t *testing.T) {
	exporter := NewReportCardPDF(nil)
	card := sampleCard()
	card.Profile = models.Profile{}

	out, err := exporter.Render(ReportCardData{SchoolName: "Unity Model College", Card: card})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out[:8]), "%PDF"))
}

func TestPhotoAssetName(t *testing.T) {
	assert.Equal(t, "photos/adaeze_obi.png", photoAssetName("  Adaeze   Obi "))
	assert.Equal(t, "photos/bala.png", photoAssetName("Bala"))
}

func TestBroadsheetRender(t *testing.T) {
	entries := []models.ResultEntry{
		{
			StudentName: "Adams",
			TotalScore:  160,
			Results: []models.SubjectScore{
				{Subject: "Mathematics", CA1: 20, CA2: 20, Exam: 45, Final: 85, Grade: "A", Remark: "Excellent"},
				{Subject: "Biology", CA1: 15, CA2: 15, Exam: 45, Final: 75, Grade: "A", Remark: "Excellent"},
			},
		},
		{
			StudentName: "Bala",
			TotalScore:  55.5,
			Results: []models.SubjectScore{
				{Subject: "Mathematics", CA1: 10, CA2: 10.5, Exam: 35, Final: 55.5, Grade: "C", Remark: "Credit"},
			},
		},
	}
	ranks := map[string]string{"adams": "1st", "bala": "2nd"}

	out, err := NewBroadsheet().Render(entries, ranks)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4, "header plus one row per subject")
	assert.Equal(t, "Student,Subject,CA1,CA2,Exam,Final,Grade,Remark,Total,Rank", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Adams,Mathematics,20,20,45,85,A,Excellent,160,1st")
	assert.Contains(t, lines[3], "Bala,Mathematics,10,10.5,35,55.5,C,Credit,55.5,2nd")
}

func TestBroadsheetRenderEmpty(t *testing.T) {
	out, err := NewBroadsheet().Render(nil, nil)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, lines, 1, "only the header remains")
}
