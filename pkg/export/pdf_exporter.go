package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/report-card-api/internal/models"
)

// AssetLocator resolves optional report images. A nil locator or a missing
// file simply omits the image.
type AssetLocator interface {
	Path(name string) string
	Exists(name string) bool
}

// Asset names looked up through the locator.
const (
	assetLogo          = "logo.png"
	assetSignTeacher   = "sign_class_teacher.png"
	assetSignHOD       = "sign_hod.png"
	assetSignPrincipal = "sign_principal.png"
)

// ReportCardData is everything the renderer needs for one student.
type ReportCardData struct {
	SchoolName  string
	SchoolMotto string
	Card        models.ReportCard
}

// ReportCardPDF renders a student report card as an A4 PDF: school header,
// profile block, bordered score table, total + rank, and three signature
// blocks. Generated on demand; never written to disk here.
type ReportCardPDF struct {
	assets AssetLocator
}

// NewReportCardPDF constructs the renderer.
func NewReportCardPDF(assets AssetLocator) *ReportCardPDF {
	return &ReportCardPDF{assets: assets}
}

// Render produces the PDF bytes.
func (e *ReportCardPDF) Render(data ReportCardData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	e.tryImage(pdf, assetLogo, 10, 10, 22, 22)
	e.tryImage(pdf, photoAssetName(data.Card.Entry.StudentName), 172, 10, 28, 32)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, strings.ToUpper(data.SchoolName), "", 1, "C", false, 0, "")
	if data.SchoolMotto != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, data.SchoolMotto, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "TERMINAL REPORT CARD", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	e.profileBlock(pdf, data.Card.Profile, data.Card.Entry.StudentName)
	pdf.Ln(4)
	e.scoreTable(pdf, data.Card.Entry.Results)
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 8, fmt.Sprintf("Total Score: %s", trimFloat(data.Card.Entry.TotalScore)), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, fmt.Sprintf("Position: %s of %d", data.Card.RankLabel, data.Card.ClassSize), "", 1, "R", false, 0, "")

	e.signatureBlocks(pdf)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render report card: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *ReportCardPDF) profileBlock(pdf *gofpdf.Fpdf, profile models.Profile, fallbackName string) {
	name := profile.StudentName
	if name == "" {
		name = fallbackName
	}
	age := ""
	if profile.Age > 0 {
		age = fmt.Sprintf("%d", int(profile.Age))
	}
	fields := [][2]string{
		{"Student Name", name},
		{"Registration No", profile.RegNumber},
		{"Age", age},
		{"Session", profile.Session},
		{"Term", profile.Term},
		{"Parent/Guardian", profile.ParentName},
		{"Parent Phone", profile.ParentPhone},
		{"Parent Address", profile.ParentAddress},
	}
	pdf.SetFont("Arial", "", 10)
	for i := 0; i < len(fields); i += 2 {
		left := fields[i]
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 7, left[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(60, 7, left[1], "", 0, "L", false, 0, "")
		if i+1 < len(fields) {
			right := fields[i+1]
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(35, 7, right[0]+":", "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(60, 7, right[1], "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (e *ReportCardPDF) scoreTable(pdf *gofpdf.Fpdf, scores []models.SubjectScore) {
	headers := []string{"Subject", "CA1", "CA2", "Exam", "Final", "Grade", "Remark"}
	widths := []float64{56, 20, 20, 20, 20, 18, 36}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 236, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, s := range scores {
		pdf.CellFormat(widths[0], 7, s.Subject, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, trimFloat(s.CA1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, trimFloat(s.CA2), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, trimFloat(s.Exam), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 7, trimFloat(s.Final), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 7, s.Grade, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 7, s.Remark, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
}

func (e *ReportCardPDF) signatureBlocks(pdf *gofpdf.Fpdf) {
	type block struct {
		asset   string
		caption string
	}
	blocks := []block{
		{assetSignTeacher, "Class Teacher"},
		{assetSignHOD, "Head of Department"},
		{assetSignPrincipal, "Principal"},
	}
	const y = 252.0
	xs := []float64{18, 80, 142}
	for i, b := range blocks {
		e.tryImage(pdf, b.asset, xs[i], y, 50, 14)
		pdf.Line(xs[i], y+16, xs[i]+50, y+16)
		pdf.SetXY(xs[i], y+17)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(50, 5, b.caption, "", 0, "C", false, 0, "")
	}
}

// tryImage places an image only when the asset can be resolved; a missing
// file degrades to an empty slot instead of failing the report.
func (e *ReportCardPDF) tryImage(pdf *gofpdf.Fpdf, name string, x, y, w, h float64) {
	if e.assets == nil || !e.assets.Exists(name) {
		return
	}
	pdf.ImageOptions(e.assets.Path(name), x, y, w, h, false,
		gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	if pdf.Err() {
		pdf.ClearError()
	}
}

// photoAssetName maps a student name to the photo asset path, e.g.
// "Adaeze Obi" -> "photos/adaeze_obi.png".
func photoAssetName(studentName string) string {
	slug := strings.ToLower(strings.TrimSpace(studentName))
	slug = strings.Join(strings.Fields(slug), "_")
	return "photos/" + slug + ".png"
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
