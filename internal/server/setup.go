package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/metrics"
	"github.com/schemaworks/registrar/internal/quota"
)

// NewRouter assembles the gin engine: recovery, correlation ids and timing
// on everything, the admission gate on the API surface only. The liveness
// endpoint stays outside the gate so orchestration probes are never shed.
func NewRouter(h *Handlers, limiter quota.Limiter, log *logger.Logger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Timing(m))

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	api.Use(Admission(limiter, log, m))
	{
		api.POST("/schemas", h.CreateSchema)
		api.POST("/schemas/:schemaName/versions", h.RegisterVersion)
		api.POST("/check-schema-version-validity", h.CheckValidity)
	}

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, invalidRequest(
			fmt.Sprintf("Request method %s is not supported", c.Request.Method)))
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, invalidRequest(
			fmt.Sprintf("No handler for %s %s", c.Request.Method, c.Request.URL.Path)))
	})

	return router
}

// NewHTTPServer wraps the router in an http.Server with the configured
// timeouts.
func NewHTTPServer(cfg Config, router *gin.Engine) *http.Server {
	cfg = cfg.withDefaults()
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
