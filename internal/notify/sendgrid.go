package notify

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"healthscore-backend/internal/shared/telemetry"
)

// SendGridNotifier sends report emails with the PDF attached through the
// SendGrid v3 API.
type SendGridNotifier struct {
	apiKey    string
	fromEmail string
}

// NewSendGridNotifier constructs the notifier. An empty API key is allowed;
// sends then fail with a structured not_configured outcome.
func NewSendGridNotifier(apiKey, fromEmail string) *SendGridNotifier {
	if apiKey == "" {
		telemetry.Warn("notify.sendgrid_not_configured", map[string]any{
			"detail": "SENDGRID_API_KEY not set; email dispatch will fail",
		})
	}
	return &SendGridNotifier{apiKey: apiKey, fromEmail: fromEmail}
}

// Send delivers the email described by req.
func (n *SendGridNotifier) Send(ctx context.Context, req Request) Outcome {
	if n.apiKey == "" {
		return Outcome{
			Success:   false,
			ErrorType: "not_configured",
			Details:   "SendGrid API key not configured",
		}
	}

	pdfData, err := os.ReadFile(req.PDFPath)
	if err != nil {
		return Outcome{
			Success:   false,
			ErrorType: "attachment_missing",
			Details:   "PDF not readable at path: " + req.PDFPath,
		}
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("", n.fromEmail))
	message.Subject = req.Subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", req.Body))
	if req.HTMLBody != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLBody))
	}

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdfData))
	attachment.SetType("application/pdf")
	attachment.SetFilename(filepath.Base(req.PDFPath))
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	client := sendgrid.NewSendClient(n.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		telemetry.Error("notify.send_failed", map[string]any{
			"to":    req.To,
			"error": err.Error(),
		})
		return Outcome{
			Success:   false,
			ErrorType: "provider_error",
			Details:   err.Error(),
		}
	}

	if resp.StatusCode >= 400 {
		telemetry.Error("notify.send_rejected", map[string]any{
			"to":     req.To,
			"status": resp.StatusCode,
			"body":   resp.Body,
		})
		return Outcome{
			Success:      false,
			StatusCode:   resp.StatusCode,
			ErrorType:    "provider_rejected",
			Details:      "SendGrid rejected the message",
			ResponseBody: resp.Body,
		}
	}

	telemetry.Info("notify.sent", map[string]any{
		"to":     req.To,
		"status": resp.StatusCode,
	})
	return Outcome{
		Success:    true,
		Message:    "email sent successfully",
		StatusCode: resp.StatusCode,
	}
}
