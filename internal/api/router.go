package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samu/email-triage/internal/config"
)

// Router wires the HTTP endpoints to their handlers
type Router struct {
	Engine *gin.Engine
}

// NewRouter creates the gin engine with all routes registered
func NewRouter(
	triageHandler *TriageHandler,
	mailHandler *MailHandler,
	serverCfg config.ServerConfig,
) *Router {
	r := gin.Default()

	// The frontend is served from arbitrary origins
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.POST("/processar/", triageHandler.ProcessEmail)
		api.POST("/enviar-email/", mailHandler.SendEmail)
	}

	r.GET("/healthz", healthHandler)

	if serverCfg.StaticDir != "" {
		r.Static("/static", serverCfg.StaticDir)
		index := filepath.Join(serverCfg.StaticDir, "index.html")
		r.GET("/", func(c *gin.Context) {
			c.File(index)
		})
	} else {
		r.GET("/", healthHandler)
	}

	return &Router{Engine: r}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "email-triage",
	})
}
