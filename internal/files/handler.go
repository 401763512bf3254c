package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"healthscore-backend/internal/notify"
	"healthscore-backend/internal/processing"
	"healthscore-backend/internal/scoring"
	"healthscore-backend/internal/shared/metrics"
	"healthscore-backend/internal/shared/server/respond"
	"healthscore-backend/internal/shared/storage/filestore"
)

// Handler wires stored-payload HTTP endpoints to the service.
type Handler struct {
	Svc           *Service
	Notifier      notify.Notifier
	EmailFieldRef string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, notifier notify.Notifier, emailFieldRef string) *Handler {
	return &Handler{Svc: svc, Notifier: notifier, EmailFieldRef: emailFieldRef}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files", h.list)
	rg.GET("/files/:filename", h.get)
	rg.POST("/files/:filename/process", h.process)
	rg.POST("/files/:filename/email", h.email)
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.Svc.List()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to list files", err.Error())
		return
	}
	if entries == nil {
		entries = []filestore.Entry{}
	}
	respond.OK(c, gin.H{"success": true, "files": entries})
}

func (h *Handler) get(c *gin.Context) {
	name := c.Param("filename")
	data, err := h.Svc.Get(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to read file", err.Error())
		return
	}

	var content any
	if err := json.Unmarshal(data, &content); err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Stored file is not valid JSON", nil)
		return
	}

	respond.OK(c, gin.H{"success": true, "fileName": name, "content": content})
}

type processRequest struct {
	OutputFormat string `json:"outputFormat"`
}

func (h *Handler) process(c *gin.Context) {
	name := c.Param("filename")

	var req processRequest
	_ = c.ShouldBindJSON(&req) // body is optional, default to pdf

	result, err := h.Svc.Process(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to process file", err.Error())
		return
	}

	if !result.Success || result.Data == nil {
		respond.OK(c, result)
		return
	}

	chartURL := artifactURL("/api/view-chart", result.Data.ChartPath)
	if req.OutputFormat == "html" {
		respond.OK(c, gin.H{
			"success":  true,
			"message":  result.Message,
			"chartUrl": chartURL,
			"data":     result.Data,
		})
		return
	}

	respond.OK(c, gin.H{
		"success":  true,
		"message":  result.Message,
		"pdfUrl":   artifactURL("/api/download-pdf", result.Data.ReportPath),
		"chartUrl": chartURL,
		"pdfPath":  result.Data.ReportPath,
		"data":     result.Data,
	})
}

type emailResponse struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	FileName         string            `json:"fileName"`
	ProcessingResult processing.Result `json:"processingResult"`
	EmailResult      notify.Outcome    `json:"emailResult"`
}

func (h *Handler) email(c *gin.Context) {
	name := c.Param("filename")

	payload, err := h.Svc.Get(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to read file", err.Error())
		return
	}

	toEmail := scoring.ExtractEmail(payload, h.EmailFieldRef)
	if toEmail == "" {
		toEmail = c.Query("email")
	}
	if toEmail == "" {
		respond.Error(c, http.StatusBadRequest, "missing_email",
			"No email address found",
			"could not extract email from file and none provided as query parameter")
		return
	}

	result := h.Svc.Processor.ProcessPayload(payload)
	if !result.Success || result.Data == nil {
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "Could not generate PDF report from the file", result.Message)
		return
	}
	if _, err := os.Stat(result.Data.ReportPath); err != nil {
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "Generated PDF not found on disk", nil)
		return
	}

	outcome := h.Notifier.Send(c.Request.Context(), notify.Request{
		To:      toEmail,
		Subject: fmt.Sprintf("Your Health Score Report - %s", time.Now().UTC().Format("2006-01-02")),
		Body: fmt.Sprintf("Hello %s,\n\nThank you for using our Health Score service. "+
			"Your health score report is attached.\n\nBest regards,\nThe Health Score Team", result.Data.UserName),
		PDFPath:   result.Data.ReportPath,
		HTMLBody:  notify.BuildHTMLBody(result.Data.UserName, result.Data.Scores, result.Data.ChartPath),
		ChartPath: result.Data.ChartPath,
		Scores:    &result.Data.Scores,
	})
	if outcome.Success {
		metrics.EmailsSent.WithLabelValues("sent").Inc()
	} else {
		metrics.EmailsSent.WithLabelValues("failed").Inc()
	}

	message := "File processed and email sent"
	if !outcome.Success {
		message = "File processed but email failed"
	}
	respond.OK(c, emailResponse{
		Success:          outcome.Success,
		Message:          message,
		FileName:         name,
		ProcessingResult: result,
		EmailResult:      outcome,
	})
}

func artifactURL(route, path string) string {
	return route + "?path=" + url.QueryEscape(filepath.Base(path))
}
