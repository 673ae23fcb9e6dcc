package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"property-api/metrics"
	"property-api/models"
)

// PropertyStore ist alles, was die Handler vom Repository brauchen.
// *services.PropertyService erfüllt es.
type PropertyStore interface {
	QueryByID(ctx context.Context, id uint) (*models.Property, error)
	QueryMany(ctx context.Context, q models.FilterQuery) ([]models.Property, int64, error)
	Create(ctx context.Context, in models.PropertyInput) (*models.Property, error)
	Update(ctx context.Context, id uint, in models.PropertyInput) (*models.Property, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

const indexHint = `Visit "/properties" to load properties`

// NewRouter baut die gin-Engine mit Middleware, Metrics-Endpunkt und allen Routen.
func NewRouter(store PropertyStore, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(metrics.Middleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, indexHint)
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	})

	setupPropertyRoutes(router, store, log)
	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("Request failed", fields...)
			return
		}
		log.Debug("Request handled", fields...)
	}
}
