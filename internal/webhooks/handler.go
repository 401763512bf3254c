package webhooks

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"healthscore-backend/internal/notify"
	"healthscore-backend/internal/processing"
	"healthscore-backend/internal/scoring"
	"healthscore-backend/internal/shared/metrics"
	"healthscore-backend/internal/shared/server/respond"
)

// Handler wires webhook HTTP endpoints to the service.
type Handler struct {
	Svc           *Service
	Notifier      notify.Notifier
	EmailFieldRef string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, notifier notify.Notifier, emailFieldRef string) *Handler {
	return &Handler{Svc: svc, Notifier: notifier, EmailFieldRef: emailFieldRef}
}

// RegisterRoutes attaches webhook routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook", h.receive)
	rg.POST("/webhook-to-pdf", h.receiveToPDF)
	rg.POST("/webhook-to-email", h.receiveToEmail)
}

type ingestResponse struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	FileName         string            `json:"fileName"`
	ProcessingResult processing.Result `json:"processingResult"`
	EmailResult      *notify.Outcome   `json:"emailResult,omitempty"`
}

func (h *Handler) receive(c *gin.Context) {
	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	fileName, result, err := h.Svc.Ingest(payload)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to process webhook", err.Error())
		return
	}

	respond.OK(c, ingestResponse{
		Success:          true,
		Message:          "Webhook received, saved, and processed",
		FileName:         fileName,
		ProcessingResult: result,
	})
}

func (h *Handler) receiveToPDF(c *gin.Context) {
	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	fileName, result, err := h.Svc.Ingest(payload)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to process webhook", err.Error())
		return
	}

	if !result.Success || result.Data == nil {
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "Failed to generate PDF from webhook data", result.Message)
		return
	}
	if _, err := os.Stat(result.Data.ReportPath); err != nil {
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "Generated PDF not found on disk", nil)
		return
	}

	c.Header("X-Webhook-File", fileName)
	c.FileAttachment(result.Data.ReportPath, filepath.Base(result.Data.ReportPath))
}

func (h *Handler) receiveToEmail(c *gin.Context) {
	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	toEmail := c.Query("email")
	if toEmail == "" {
		toEmail = scoring.ExtractEmail(payload, h.EmailFieldRef)
	}
	if toEmail == "" {
		respond.Error(c, http.StatusBadRequest, "missing_email",
			"No email address provided or found in payload",
			fmt.Sprintf("provide ?email= or include an email answer with ref %s", h.EmailFieldRef))
		return
	}

	fileName, result, err := h.Svc.Ingest(payload)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to process webhook", err.Error())
		return
	}

	if !result.Success || result.Data == nil {
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "Failed to generate PDF from webhook data", result.Message)
		return
	}

	outcome := h.Notifier.Send(c.Request.Context(), notify.Request{
		To:      toEmail,
		Subject: fmt.Sprintf("Your Health Score Report - %s", time.Now().UTC().Format("2006-01-02")),
		Body: fmt.Sprintf("Hello %s,\n\nThank you for using our Health Score service. "+
			"Your health score report is attached.\n\nBest regards,\nThe Health Score Team", result.Data.UserName),
		PDFPath: result.Data.ReportPath,
	})
	recordEmailOutcome(outcome)

	message := "Webhook processed and email sent"
	if !outcome.Success {
		message = "Webhook processed but email failed"
	}
	respond.OK(c, ingestResponse{
		Success:          outcome.Success,
		Message:          message,
		FileName:         fileName,
		ProcessingResult: result,
		EmailResult:      &outcome,
	})
}

func (h *Handler) readPayload(c *gin.Context) ([]byte, bool) {
	payload, err := c.GetRawData()
	if err != nil || len(payload) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body is required", nil)
		return nil, false
	}
	return payload, true
}

func recordEmailOutcome(outcome notify.Outcome) {
	if outcome.Success {
		metrics.EmailsSent.WithLabelValues("sent").Inc()
	} else {
		metrics.EmailsSent.WithLabelValues("failed").Inc()
	}
}
