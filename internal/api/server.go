package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/fraudlens/internal/api/handlers"
	"github.com/eshaffer321/fraudlens/internal/api/middleware"
	"github.com/eshaffer321/fraudlens/internal/web"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	RateLimit      float64 // requests per second, 0 disables limiting
	Burst          int
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		RateLimit:      10,
		Burst:          30,
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	queries    handlers.Querier
	base       *handlers.Base
}

// NewServer creates a new API server over the given query engine.
func NewServer(cfg Config, queries handlers.Querier, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		router:  gin.New(),
		logger:  logger,
		queries: queries,
		base:    handlers.NewBase(queries, logger),
	}

	s.setupMiddleware()
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	return s, nil
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())
	s.router.Use(gin.CustomRecovery(s.base.Recover))
	s.router.Use(middleware.Logging(s.logger))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = s.config.AllowedOrigins
	s.router.Use(middleware.CORS(corsConfig))

	s.router.Use(middleware.RateLimit(s.config.RateLimit, s.config.Burst, s.logger))
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() error {
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	static, err := web.Static()
	if err != nil {
		return fmt.Errorf("load static assets: %w", err)
	}
	s.router.SetHTMLTemplate(tmpl)
	s.router.StaticFS("/static", http.FS(static))

	base := s.base

	// Health check (for load balancers)
	s.router.GET("/health", handlers.NewHealthHandler(base).Get)

	pages := handlers.NewPagesHandler(base)
	s.router.GET("/", pages.Index)
	s.router.GET("/single_transaction", pages.SingleTransaction)
	s.router.GET("/transaction_range", pages.TransactionRange)

	s.router.POST("/predict_single", handlers.NewPredictHandler(base).Predict)
	s.router.POST("/analyze_range", handlers.NewAnalyzeHandler(base).Analyze)

	s.router.NoRoute(base.NotFound)

	return nil
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() http.Handler {
	return s.router
}
