package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/care-moments/internal/domain/auth"
	"github.com/yanqian/care-moments/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// A nil gatherer disables the metrics endpoint.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, gatherer prometheus.Gatherer) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		abortWithError(c, NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil))
	})
	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "route not found", nil))
	})
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)
	if cfg.Metrics.Enabled && gatherer != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api/v1", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.POST("/burnout/analyze", handler.AnalyzeBurnout)
		api.POST("/moments/predict", handler.PredictMoments)
		api.POST("/interactions/insight", handler.InteractionInsight)
		api.POST("/interactions/preferences", handler.ExtractPreferences)
		api.POST("/suggestions", handler.Suggest)

		recipients := api.Group("/recipients/:id", authMiddleware(authSvc))
		{
			recipients.GET("/burnout", handler.RecipientBurnout)
			recipients.GET("/moments", handler.RecipientMoments)
			recipients.GET("/overview", handler.RecipientOverview)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
