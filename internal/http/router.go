package http

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"go.ngs.io/seaice-tsi/internal/metrics"
	"go.ngs.io/seaice-tsi/internal/usecase"
)

// SetupRouter creates and configures the Gin router. An empty allowedOrigins
// allows all origins. collector may be nil to disable /metrics.
func SetupRouter(retrievalUC *usecase.RetrievalUseCase, collector *metrics.Collector, allowedOrigins []string, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger, collector))

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(retrievalUC)

	// API v1 routes.
	v1 := router.Group("/v1")
	tsi := v1.Group("/tsi")
	tsi.GET("/grid", handler.GetGrid)
	tsi.GET("/point", handler.GetPoint)
	tsi.GET("/locate", handler.GetLocation)
	v1.GET("/fields/:id", handler.GetField)
	v1.GET("/eras", handler.GetEras)

	router.GET("/health", handler.HealthCheck)
	if collector != nil {
		router.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	return router
}

// requestLogger logs one line per request and records request metrics.
func requestLogger(logger zerolog.Logger, collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := c.Writer.Status()
		if collector != nil {
			collector.RecordAPIRequest(endpoint, c.Request.Method, strconv.Itoa(status), elapsed)
		}
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
	}
}
