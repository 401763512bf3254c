package bootstrap

import (
	"github.com/gin-gonic/gin"

	"healthscore-backend/internal/files"
	"healthscore-backend/internal/notify"
	"healthscore-backend/internal/processing"
	"healthscore-backend/internal/reports"
	"healthscore-backend/internal/scoring"
	"healthscore-backend/internal/shared/config"
	"healthscore-backend/internal/shared/server"
	"healthscore-backend/internal/shared/storage/filestore"
	"healthscore-backend/internal/shared/telemetry"
	"healthscore-backend/internal/webhooks"
)

// App holds shared dependencies, constructed once at process start and
// passed explicitly into request handlers.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Payloads        *filestore.Store
	Lookup          *scoring.LookupTable
	Scorer          *scoring.Scorer
	ReportsService  *reports.Service
	Processor       *processing.Service
	Notifier        notify.Notifier
	WebhooksHandler *webhooks.Handler
	FilesHandler    *files.Handler
	ReportsHandler  *reports.Handler
}

// Options override collaborators for tests.
type Options struct {
	Notifier  notify.Notifier
	Charts    reports.ChartRenderer
	Documents reports.DocumentRenderer
}

// Build prepares all dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	return BuildWithOptions(cfg, Options{})
}

// BuildWithOptions is Build with test overrides applied.
func BuildWithOptions(cfg config.Config, opts Options) (*App, error) {
	telemetry.Init(cfg.LogLevel)

	payloads, err := filestore.New(cfg.JSONDir)
	if err != nil {
		return nil, err
	}

	charts := opts.Charts
	if charts == nil {
		renderer, err := reports.NewRadarChartRenderer(cfg.ChartsDir)
		if err != nil {
			return nil, err
		}
		charts = renderer
	}

	documents := opts.Documents
	if documents == nil {
		renderer, err := reports.NewPDFReportRenderer(cfg.ReportsDir)
		if err != nil {
			return nil, err
		}
		documents = renderer
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.SendGridFromEmail)
	}

	lookup := scoring.LoadLookupTable(cfg.AnswerMapPath)
	scorer := scoring.NewScorer(lookup)

	reportsSvc := &reports.Service{Charts: charts, Documents: documents}
	processor := &processing.Service{
		Scorer:       scorer,
		Reports:      reportsSvc,
		NameFieldRef: cfg.NameFieldRef,
	}

	webhooksSvc := &webhooks.Service{Payloads: payloads, Processor: processor}
	filesSvc := &files.Service{Payloads: payloads, Processor: processor}

	app := &App{
		Config:          cfg,
		Payloads:        payloads,
		Lookup:          lookup,
		Scorer:          scorer,
		ReportsService:  reportsSvc,
		Processor:       processor,
		Notifier:        notifier,
		WebhooksHandler: webhooks.NewHandler(webhooksSvc, notifier, cfg.EmailFieldRef),
		FilesHandler:    files.NewHandler(filesSvc, notifier, cfg.EmailFieldRef),
		ReportsHandler:  reports.NewHandler(cfg.ChartsDir, cfg.ReportsDir),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Webhooks: app.WebhooksHandler,
		Files:    app.FilesHandler,
		Reports:  app.ReportsHandler,
	})

	return app, nil
}
