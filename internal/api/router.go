package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/domain"
	"github.com/kindredgraph/kindred/internal/middleware"
	"github.com/kindredgraph/kindred/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log             *logrus.Logger
	Pool            DatabaseChecker
	Hub             *ws.Hub
	Family          domain.FamilyService
	Path            domain.PathService
	Match           domain.MatchService
	CORSOrigins     []string
	Version         string
	DefaultMaxDepth int
	RateLimitRPS    float64
	RateLimitBurst  int
}

// maxBodySize caps request bodies; search filters are the only payload.
const maxBodySize = 1 << 20

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	var clients ClientCounter
	if deps.Hub != nil {
		clients = deps.Hub
	}

	health := NewHealthHandler(deps.Pool, clients, log, deps.Version)
	family := NewFamilyHandler(deps.Family, log)
	path := NewPathHandler(deps.Path, deps.DefaultMaxDepth, log)
	match := NewMatchHandler(deps.Match, deps.DefaultMaxDepth, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	api.GET("/persons/:id/family", family.Get)
	api.GET("/path/:from/:to", path.Get)
	api.POST("/matches/search", match.Search)

	if deps.Hub != nil {
		dispatcher := NewDispatcher(deps.Family, deps.Path, deps.Match, deps.DefaultMaxDepth, log)
		api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, dispatcher))
	}
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
