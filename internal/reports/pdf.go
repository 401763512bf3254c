package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"healthscore-backend/internal/scoring"
	"healthscore-backend/internal/shared/storage/filestore"
)

// PDFReportRenderer produces the downloadable health score report.
type PDFReportRenderer struct {
	dir string
}

// NewPDFReportRenderer returns a renderer writing reports into dir.
func NewPDFReportRenderer(dir string) (*PDFReportRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("reports dir: %w", err)
	}
	return &PDFReportRenderer{dir: dir}, nil
}

// Render writes a PDF with the chart image and a score table, returning
// its path. A missing chart file skips the image rather than failing: the
// table alone is still a valid report.
func (r *PDFReportRenderer) Render(scores scoring.PillarScores, chartPath, userName string) (string, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "Your Health Score Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("User: %s", userName), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if _, err := os.Stat(chartPath); err == nil {
		imgWidth := 120.0
		pdf.ImageOptions(chartPath, (pageWidth-imgWidth)/2, pdf.GetY(), imgWidth, 0, true,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Detailed Health Scores", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeScoreTable(pdf, scores)

	name := filestore.UniqueName("report", "pdf")
	path := filepath.Join(r.dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

func writeScoreTable(pdf *fpdf.Fpdf, scores scoring.PillarScores) {
	const labelWidth, valueWidth = 100.0, 26.0

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(144, 238, 144)
	pdf.CellFormat(labelWidth, 9, "Health Pillar", "1", 0, "C", true, 0, "")
	pdf.CellFormat(valueWidth, 9, "Score", "1", 1, "C", true, 0, "")

	rows := []struct {
		label string
		value float64
	}{
		{"Muscles and Visceral Fat", scores.MusclesAndVisceralFat},
		{"Cardiovascular Health", scores.CardioVascular},
		{"Sleep", scores.Sleep},
		{"Cognitive Health", scores.Cognitive},
		{"Metabolic Health", scores.Metabolic},
		{"Emotional Well-being", scores.Emotional},
		{"Overall Score", scores.Overall},
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetFillColor(255, 255, 255)
	for _, row := range rows {
		pdf.CellFormat(labelWidth, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(valueWidth, 8, formatScore(row.value), "1", 1, "C", false, 0, "")
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
