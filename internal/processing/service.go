package processing

import (
	"encoding/json"
	"time"

	"healthscore-backend/internal/reports"
	"healthscore-backend/internal/scoring"
	"healthscore-backend/internal/shared/metrics"
	"healthscore-backend/internal/shared/telemetry"
)

// Result is the structured outcome of one processed submission.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *ResultData `json:"data,omitempty"`
}

// ResultData carries pointers to the generated artifacts.
type ResultData struct {
	ChartPath  string               `json:"chart_path"`
	ReportPath string               `json:"pdf_report_path"`
	UserName   string               `json:"user_name"`
	Scores     scoring.PillarScores `json:"pillar_scores"`
}

// Service runs the full pipeline for one raw payload: extract answers,
// score, render chart and report. Scoring never fails; only an unparseable
// payload or a renderer error yields a failure Result.
type Service struct {
	Scorer       *scoring.Scorer
	Reports      *reports.Service
	NameFieldRef string
}

// ProcessPayload processes raw JSON from a webhook or a stored file.
func (s *Service) ProcessPayload(raw []byte) Result {
	start := time.Now()

	if !json.Valid(raw) {
		metrics.ProcessingFailed.Inc()
		return Result{Success: false, Message: "payload is not valid JSON"}
	}

	userName := scoring.ExtractUserName(raw, s.NameFieldRef)
	answers := scoring.ExtractAnswers(raw)
	scores := s.Scorer.Calculate(answers)

	artifacts, err := s.Reports.Generate(scores, userName)
	if err != nil {
		metrics.ProcessingFailed.Inc()
		telemetry.Error("processing.generate_failed", map[string]any{
			"user_name": userName,
			"error":     err.Error(),
		})
		return Result{Success: false, Message: "failed to generate report artifacts: " + err.Error()}
	}

	metrics.ProcessingCompleted.Inc()
	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	telemetry.Info("processing.complete", map[string]any{
		"user_name":   userName,
		"overall":     scores.Overall,
		"chart_path":  artifacts.ChartPath,
		"report_path": artifacts.ReportPath,
	})

	return Result{
		Success: true,
		Message: "payload processed successfully",
		Data: &ResultData{
			ChartPath:  artifacts.ChartPath,
			ReportPath: artifacts.ReportPath,
			UserName:   userName,
			Scores:     scores,
		},
	}
}
