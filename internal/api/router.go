// Package api exposes the HTTP surface: public page resolution, the
// operator/admin API, health and Prometheus metrics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/pagegen/internal/config"
	"github.com/jonesrussell/pagegen/internal/logger"
)

const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
	healthCheckTimeout   = 2 * time.Second
)

// Router holds the API dependencies
type Router struct {
	store       Store
	pageCache   PageResolver
	passes      PassRunner
	redisClient redis.UniversalClient
	cfg         *config.Config
	logger      logger.Logger
	version     string
}

// NewRouter creates a new API router
func NewRouter(
	store Store,
	pageCache PageResolver,
	passes PassRunner,
	redisClient redis.UniversalClient,
	cfg *config.Config,
	log logger.Logger,
	version string,
) *Router {
	return &Router{
		store:       store,
		pageCache:   pageCache,
		passes:      passes,
		redisClient: redisClient,
		cfg:         cfg,
		logger:      log,
		version:     version,
	}
}

// Engine builds the gin engine with all routes and middleware
func (r *Router) Engine() *gin.Engine {
	if !r.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(r.cfg.Server.CORSOrigins))

	router.GET("/health", r.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	// Services
	services := v1.Group("/services")
	services.GET("", r.listServices)
	services.POST("", r.createService)
	services.GET("/:id", r.getService)
	services.PUT("/:id", r.updateService)
	services.DELETE("/:id", r.deleteService)

	// Cities
	cities := v1.Group("/cities")
	cities.GET("", r.listCities)
	cities.POST("", r.createCity)
	cities.GET("/:id", r.getCity)
	cities.PUT("/:id", r.updateCity)
	cities.DELETE("/:id", r.deleteCity)

	// Generated pages
	pages := v1.Group("/pages")
	pages.GET("/slugs", r.listPageSlugs)
	pages.DELETE("", r.clearPages)

	v1.POST("/generate", r.triggerGeneration)
	v1.GET("/stats", r.getStats)

	// Public page resolution is the catch-all so it never conflicts with the
	// static routes above; anything that isn't /{citySlug}/{serviceSlug}
	// falls through to the same not-found payload.
	router.NoRoute(r.resolvePage)

	return router
}

// NewServer wraps the engine in an http.Server with configured timeouts
func (r *Router) NewServer() *http.Server {
	return &http.Server{
		Addr:         r.cfg.Server.Address,
		Handler:      r.Engine(),
		ReadTimeout:  r.cfg.Server.ReadTimeout,
		WriteTimeout: r.cfg.Server.WriteTimeout,
	}
}

// healthCheck returns the service health status
func (r *Router) healthCheck(c *gin.Context) {
	health := gin.H{
		"status":  healthStatusHealthy,
		"service": "pagegen",
		"version": r.version,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	dbConnected := true
	if err := r.store.Ping(ctx); err != nil {
		dbConnected = false
		health["status"] = healthStatusDegraded
	}
	health["database"] = gin.H{"connected": dbConnected}

	redisConnected := true
	if r.redisClient == nil {
		redisConnected = false
	} else if err := r.redisClient.Ping(ctx).Err(); err != nil {
		redisConnected = false
	}
	if !redisConnected && health["status"] == healthStatusHealthy {
		health["status"] = healthStatusDegraded
	}
	health["redis"] = gin.H{"connected": redisConnected}

	c.JSON(http.StatusOK, health)
}
