package notify

import (
	"context"

	"healthscore-backend/internal/scoring"
)

// Request describes one report email to dispatch. PDFPath must point at an
// existing file; callers verify that before invoking the notifier.
type Request struct {
	To        string
	Subject   string
	Body      string
	PDFPath   string
	HTMLBody  string                // optional rendered HTML alternative
	ChartPath string                // optional, embedded in HTML bodies
	Scores    *scoring.PillarScores // optional, for HTML templating
}

// Outcome is the structured delivery result surfaced unchanged to the HTTP
// layer.
type Outcome struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	StatusCode   int    `json:"status_code,omitempty"`
	ErrorType    string `json:"error_type,omitempty"`
	Details      string `json:"details,omitempty"`
	ResponseBody string `json:"response_body,omitempty"`
}

// Notifier delivers a report email and reports success or failure; it never
// panics and never returns a Go error, only an Outcome.
type Notifier interface {
	Send(ctx context.Context, req Request) Outcome
}
