package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osaa-analytics/unga-readout/internal/infrastructure/cache"
	"github.com/osaa-analytics/unga-readout/internal/infrastructure/http/middleware"
	"github.com/osaa-analytics/unga-readout/pkg/config"
	"github.com/osaa-analytics/unga-readout/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	jwtManager      *jwt.Manager
	counters        *cache.CounterStore
	authHandler     *Auth
	adminHandler    *Admin
	analysisHandler *Analysis
	searchHandler   *Search
	speechHandler   *Speech
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jwtManager *jwt.Manager, counters *cache.CounterStore, authHandler *Auth, adminHandler *Admin, analysisHandler *Analysis, searchHandler *Search, speechHandler *Speech) *Router {
	return &Router{
		cfg:             cfg,
		jwtManager:      jwtManager,
		counters:        counters,
		authHandler:     authHandler,
		adminHandler:    adminHandler,
		analysisHandler: analysisHandler,
		searchHandler:   searchHandler,
		speechHandler:   speechHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupAdminRoutes(v1)
	rt.setupAnalysisRoutes(v1)
	rt.setupSearchRoutes(v1)
	rt.setupSpeechRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")
	authGroup.POST("/register", rt.authHandler.Register)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.GET("/me", rt.authHandler.Me, middleware.EchoAuth(rt.jwtManager))
}

// setupAdminRoutes configures the account approval queue behind the shared
// admin password
func (rt *Router) setupAdminRoutes(g *echo.Group) {
	adminGroup := g.Group("/admin", middleware.AdminGuard(&rt.cfg.Admin))
	adminGroup.GET("/users/pending", rt.adminHandler.PendingUsers)
	adminGroup.POST("/users/:id/approve", rt.adminHandler.ApproveUser)
	adminGroup.POST("/users/:id/reject", rt.adminHandler.RejectUser)
}

// setupAnalysisRoutes configures readout generation and retrieval. All
// routes require an authenticated, approved account; generation is also
// rate limited.
func (rt *Router) setupAnalysisRoutes(g *echo.Group) {
	analysisGroup := g.Group("/analyses", middleware.EchoAuth(rt.jwtManager))
	limited := middleware.RateLimit(rt.counters, &rt.cfg.RateLimit)

	analysisGroup.POST("", rt.analysisHandler.Generate, limited)
	analysisGroup.POST("/upload", rt.analysisHandler.Upload, limited)
	analysisGroup.GET("", rt.analysisHandler.List)
	analysisGroup.GET("/statistics", rt.analysisHandler.Statistics)
	analysisGroup.GET("/:id", rt.analysisHandler.Get)
	analysisGroup.DELETE("/:id", rt.analysisHandler.Delete)
}

// setupSearchRoutes configures corpus question answering
func (rt *Router) setupSearchRoutes(g *echo.Group) {
	g.POST("/search", rt.searchHandler.Query, middleware.EchoAuth(rt.jwtManager))
}

// setupSpeechRoutes configures the historical corpus endpoints
func (rt *Router) setupSpeechRoutes(g *echo.Group) {
	speechGroup := g.Group("/speeches", middleware.EchoAuth(rt.jwtManager))
	speechGroup.GET("", rt.speechHandler.List)
	speechGroup.GET("/trends", rt.searchHandler.Trends)
	speechGroup.POST("/corpus", rt.speechHandler.LoadCorpus, middleware.AdminGuard(&rt.cfg.Admin))
}

// healthCheck reports service liveness
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
