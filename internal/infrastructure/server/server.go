package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/habiltime/backend/internal/api/http"
	"github.com/habiltime/backend/internal/api/middleware"
	"github.com/habiltime/backend/internal/domain/calendar"
	"github.com/habiltime/backend/internal/domain/engine"
	"github.com/habiltime/backend/internal/infrastructure/config"
	"github.com/habiltime/backend/internal/infrastructure/logging"
	"github.com/habiltime/backend/internal/infrastructure/monitoring"
	"github.com/habiltime/backend/internal/infrastructure/tracing"
	"github.com/habiltime/backend/internal/providers/holidays"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	provider *holidays.Provider
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	httpSrv  *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing business time server",
		zap.String("port", cfg.Server.Port),
		zap.String("holiday_source", cfg.Holidays.SourceURL),
		zap.String("holiday_location", cfg.Holidays.Location),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Initialize request tracing
	tracer := tracing.New("businesstime", logger.Logger)

	// Holiday provider over the external source
	fetcher := holidays.NewHTTPFetcher(cfg.Holidays.SourceURL, cfg.Holidays.FetchTimeout)
	provider := holidays.New(fetcher, logger.Logger).
		WithMetrics(metrics).
		WithCacheTTL(cfg.Holidays.CacheTTL).
		WithFetchTimeout(cfg.Holidays.FetchTimeout)

	// Calculation engine over the Colombian working calendar
	cal := calendar.NewDefault()
	eng := engine.New(cal)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := api.NewHandlers(provider, eng, cfg.Holidays.Location, logger.Logger).
		WithMetrics(metrics)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/calculate", handlers.Calculate)
	router.GET("/holidays", handlers.Holidays)
	router.GET("/status", handlers.Status)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		provider: provider,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))

	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			return err
		}
	}

	// Sync logger before exit
	s.logger.Sync()

	return nil
}
