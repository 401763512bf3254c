package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthscore-backend/internal/files"
	"healthscore-backend/internal/reports"
	"healthscore-backend/internal/shared/config"
	"healthscore-backend/internal/shared/metrics"
	"healthscore-backend/internal/shared/server/middleware"
	"healthscore-backend/internal/shared/server/respond"
	"healthscore-backend/internal/webhooks"
)

// RouterDeps carries the handlers the router wires up. All dependencies are
// injected; the router holds no singletons of its own.
type RouterDeps struct {
	Config   config.Config
	Webhooks *webhooks.Handler
	Files    *files.Handler
	Reports  *reports.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "message": "Health Score API is running"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	deps.Webhooks.RegisterRoutes(api)
	deps.Files.RegisterRoutes(api)
	deps.Reports.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
