package webhooks

import (
	"bytes"
	"encoding/json"
	"fmt"

	"healthscore-backend/internal/processing"
	"healthscore-backend/internal/shared/metrics"
	"healthscore-backend/internal/shared/storage/filestore"
)

// Service persists webhook payloads and runs them through the pipeline.
type Service struct {
	Payloads  *filestore.Store
	Processor *processing.Service
}

// Ingest saves the raw payload under a unique name and processes it
// immediately. The save happening first means a processing failure still
// leaves the payload on disk for reprocessing via the files API.
func (s *Service) Ingest(payload []byte) (string, processing.Result, error) {
	metrics.WebhooksReceived.Inc()

	name := filestore.UniqueName("Webhook", "json")
	if _, err := s.Payloads.Save(name, prettyJSON(payload)); err != nil {
		return "", processing.Result{}, fmt.Errorf("save webhook payload: %w", err)
	}

	return name, s.Processor.ProcessPayload(payload), nil
}

func prettyJSON(raw []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return raw
	}
	return buf.Bytes()
}
