package reports

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"healthscore-backend/internal/shared/server/respond"
)

// Handler serves generated artifacts back to callers. A missing artifact is
// a not-found condition, distinct from a processing failure.
type Handler struct {
	ChartsDir  string
	ReportsDir string
}

// NewHandler constructs a Handler.
func NewHandler(chartsDir, reportsDir string) *Handler {
	return &Handler{ChartsDir: chartsDir, ReportsDir: reportsDir}
}

// RegisterRoutes attaches artifact routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/download-pdf", h.downloadPDF)
	rg.GET("/view-chart", h.viewChart)
}

func (h *Handler) downloadPDF(c *gin.Context) {
	path, ok := h.resolveArtifact(c.Query("path"), h.ReportsDir)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "PDF file not found or path is invalid", nil)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *Handler) viewChart(c *gin.Context) {
	path, ok := h.resolveArtifact(c.Query("path"), h.ChartsDir)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "Chart file not found or path is invalid", nil)
		return
	}
	c.File(path)
}

// resolveArtifact confines the requested path to the artifact directory and
// checks the file exists. Callers may pass either a bare artifact name or
// the full path a processing response handed out.
func (h *Handler) resolveArtifact(raw, dir string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}

	path := filepath.Join(dir, filepath.Base(filepath.Clean(raw)))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
