package reports

import (
	"fmt"

	"healthscore-backend/internal/scoring"
)

// ChartRenderer produces an image artifact from a score set.
type ChartRenderer interface {
	Render(scores scoring.PillarScores) (string, error)
}

// DocumentRenderer produces a document artifact from a score set, a chart
// artifact, and a display name.
type DocumentRenderer interface {
	Render(scores scoring.PillarScores, chartPath, userName string) (string, error)
}

// Artifacts holds the paths of a fully generated chart/report pair.
type Artifacts struct {
	ChartPath  string
	ReportPath string
}

// Service sequences chart generation and report generation. Both steps must
// complete; a failure in either aborts the whole operation. A chart already
// written when the report fails is simply left on disk - artifact names are
// unique and storage is unbounded flat files.
type Service struct {
	Charts    ChartRenderer
	Documents DocumentRenderer
}

// Generate renders the chart and then the report for the given scores.
func (s *Service) Generate(scores scoring.PillarScores, userName string) (Artifacts, error) {
	chartPath, err := s.Charts.Render(scores)
	if err != nil {
		return Artifacts{}, fmt.Errorf("render chart: %w", err)
	}

	reportPath, err := s.Documents.Render(scores, chartPath, userName)
	if err != nil {
		return Artifacts{}, fmt.Errorf("render report: %w", err)
	}

	return Artifacts{ChartPath: chartPath, ReportPath: reportPath}, nil
}
