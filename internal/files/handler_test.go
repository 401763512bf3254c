package files_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"healthscore-backend/internal/bootstrap"
	"healthscore-backend/internal/notify"
	"healthscore-backend/internal/scoring"
	"healthscore-backend/internal/shared/config"
	"healthscore-backend/internal/shared/storage/filestore"
)

const samplePayload = `{
	"form_response": {
		"answers": [
			{"type": "text", "field": {"ref": "name_field_ref"}, "text": "Grace"},
			{"type": "email", "field": {"ref": "39f116ed-5403-407a-b506-c9625e9e6b2a"}, "email": "grace@example.com"},
			{"type": "choice", "field": {"ref": "aa24a4d2-b1f2-408b-9d4a-4be80ec7508d"}, "choice": {"label": "Normal"}}
		]
	}
}`

type fakeCharts struct{ dir string }

func (f *fakeCharts) Render(scoring.PillarScores) (string, error) {
	path := filepath.Join(f.dir, filestore.UniqueName("chart", "png"))
	return path, os.WriteFile(path, []byte("\x89PNGfake"), 0o644)
}

type fakeDocuments struct{ dir string }

func (f *fakeDocuments) Render(scoring.PillarScores, string, string) (string, error) {
	path := filepath.Join(f.dir, filestore.UniqueName("report", "pdf"))
	return path, os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644)
}

type fakeNotifier struct {
	requests []notify.Request
	outcome  notify.Outcome
}

func (f *fakeNotifier) Send(_ context.Context, req notify.Request) notify.Outcome {
	f.requests = append(f.requests, req)
	return f.outcome
}

func buildApp(t *testing.T, notifier *fakeNotifier) *bootstrap.App {
	t.Helper()
	dataDir := t.TempDir()

	answerMapPath := filepath.Join(dataDir, "answer-map.json")
	answerMap := `{"aa24a4d2-b1f2-408b-9d4a-4be80ec7508d": {"Normal": 4}}`
	if err := os.WriteFile(answerMapPath, []byte(answerMap), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		Port:          "0",
		Env:           "dev",
		LogLevel:      "error",
		JSONDir:       filepath.Join(dataDir, "json"),
		ChartsDir:     filepath.Join(dataDir, "charts"),
		ReportsDir:    filepath.Join(dataDir, "reports"),
		AnswerMapPath: answerMapPath,
		NameFieldRef:  "name_field_ref",
		EmailFieldRef: "39f116ed-5403-407a-b506-c9625e9e6b2a",
	}
	for _, dir := range []string{cfg.ChartsDir, cfg.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	app, err := bootstrap.BuildWithOptions(cfg, bootstrap.Options{
		Notifier:  notifier,
		Charts:    &fakeCharts{dir: cfg.ChartsDir},
		Documents: &fakeDocuments{dir: cfg.ReportsDir},
	})
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func savePayload(t *testing.T, app *bootstrap.App) string {
	t.Helper()
	name := filestore.UniqueName("Webhook", "json")
	if _, err := app.Payloads.Save(name, []byte(samplePayload)); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestListFilesEmpty(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Success bool              `json:"success"`
		Files   []filestore.Entry `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	if resp.Files == nil || len(resp.Files) != 0 {
		t.Fatalf("expected empty list, got %v", resp.Files)
	}
}

func TestListFilesReturnsSavedPayloads(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})
	name := savePayload(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var resp struct {
		Files []filestore.Entry `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Files) != 1 || resp.Files[0].Name != name {
		t.Fatalf("expected %q listed, got %v", name, resp.Files)
	}
}

func TestGetFileReturnsContent(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})
	name := savePayload(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/files/"+name, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool           `json:"success"`
		FileName string         `json:"fileName"`
		Content  map[string]any `json:"content"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FileName != name {
		t.Fatalf("fileName = %q, want %q", resp.FileName, name)
	}
	if _, ok := resp.Content["form_response"]; !ok {
		t.Fatal("expected parsed payload content")
	}
}

func TestGetFileNotFound(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/files/nope.json", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_found") {
		t.Fatalf("expected not_found, got %s", rec.Body.String())
	}
}

func TestProcessFileReturnsArtifactURLs(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})
	name := savePayload(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/files/"+name+"/process", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool   `json:"success"`
		PDFURL   string `json:"pdfUrl"`
		ChartURL string `json:"chartUrl"`
		PDFPath  string `json:"pdfPath"`
		Data     struct {
			UserName string `json:"user_name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %s", rec.Body.String())
	}
	if !strings.HasPrefix(resp.PDFURL, "/api/download-pdf?path=") {
		t.Fatalf("pdfUrl = %q", resp.PDFURL)
	}
	if !strings.HasPrefix(resp.ChartURL, "/api/view-chart?path=") {
		t.Fatalf("chartUrl = %q", resp.ChartURL)
	}
	if resp.Data.UserName != "Grace" {
		t.Fatalf("user name = %q", resp.Data.UserName)
	}
	if _, err := os.Stat(resp.PDFPath); err != nil {
		t.Fatalf("pdf missing on disk: %v", err)
	}
}

func TestProcessFileHTMLFormatOmitsPDF(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})
	name := savePayload(t, app)

	body := strings.NewReader(`{"outputFormat": "html"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/files/"+name+"/process", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp["pdfUrl"]; ok {
		t.Fatal("html format must not include pdfUrl")
	}
	if _, ok := resp["chartUrl"]; !ok {
		t.Fatal("html format must include chartUrl")
	}
}

func TestProcessFileNotFound(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/files/nope.json/process", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestEmailFileUsesPayloadAddress(t *testing.T) {
	notifier := &fakeNotifier{outcome: notify.Outcome{Success: true, Message: "email sent successfully"}}
	app := buildApp(t, notifier)
	name := savePayload(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/files/"+name+"/email", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(notifier.requests) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(notifier.requests))
	}
	sent := notifier.requests[0]
	if sent.To != "grace@example.com" {
		t.Fatalf("sent to %q", sent.To)
	}
	if sent.HTMLBody == "" {
		t.Fatal("expected HTML body for file email")
	}
	if sent.Scores == nil {
		t.Fatal("expected scores attached to request")
	}
}

func TestEmailFileWithoutAddress(t *testing.T) {
	app := buildApp(t, &fakeNotifier{})
	name := filestore.UniqueName("Webhook", "json")
	if _, err := app.Payloads.Save(name, []byte(`{"form_response": {"answers": []}}`)); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/files/"+name+"/email", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing_email") {
		t.Fatalf("expected missing_email, got %s", rec.Body.String())
	}
}
