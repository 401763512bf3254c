package notify

import (
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"healthscore-backend/internal/scoring"
)

// BuildHTMLBody renders the email body that mirrors the PDF report: the
// chart embedded as a base64 image plus the seven score lines. Kept
// deliberately minimal so email clients do not clip the message.
func BuildHTMLBody(userName string, scores scoring.PillarScores, chartPath string) string {
	var b strings.Builder

	b.WriteString("<h2>Your Health Score Report</h2>\n")
	fmt.Fprintf(&b, "<p>User: %s</p>\n", html.EscapeString(userName))
	fmt.Fprintf(&b, "<p>Date: %s</p>\n", time.Now().Format("2006-01-02 15:04:05"))

	if img := inlineChart(chartPath); img != "" {
		b.WriteString("<div>" + img + "</div>\n")
	}

	b.WriteString("<h3>Health Scores</h3>\n")
	lines := []struct {
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
	for _, line := range lines {
		fmt.Fprintf(&b, "<p>%s: <strong>%.1f</strong></p>\n", line.label, line.value)
	}

	b.WriteString("<p>This report was generated automatically. Please do not reply to this email.</p>\n")
	return b.String()
}

func inlineChart(chartPath string) string {
	if chartPath == "" {
		return ""
	}
	data, err := os.ReadFile(chartPath)
	if err != nil {
		return ""
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf(`<img src="data:image/png;base64,%s" style="max-width: 500px; width: 100%%; height: auto;" alt="Health Score Chart" />`, encoded)
}
