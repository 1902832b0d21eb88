// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	businessHTTP "github.com/allisson/stampd/internal/business/http"
	businessUseCase "github.com/allisson/stampd/internal/business/usecase"
	"github.com/allisson/stampd/internal/config"
	"github.com/allisson/stampd/internal/httputil"
	ledgerHTTP "github.com/allisson/stampd/internal/ledger/http"
	"github.com/allisson/stampd/internal/metrics"
	tokenHTTP "github.com/allisson/stampd/internal/token/http"
)

// Pinger is satisfied by *sql.DB and database.LevelDBPinger.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server represents the HTTP server.
type Server struct {
	db     Pinger
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server. The store is pinged by the readiness endpoint.
func NewServer(db Pinger, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handlers groups the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	Token     *tokenHTTP.TokenHandler
	Business  *businessHTTP.BusinessHandler
	Scan      *ledgerHTTP.ScanHandler
	Card      *ledgerHTTP.CardHandler
	Dashboard *ledgerHTTP.DashboardHandler
}

// SetupRouter builds the gin engine with every route. ctx bounds the rate limiter cleanup goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers *Handlers,
	businessUseCase businessUseCase.BusinessUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Token issuance is unauthenticated, so it is limited per client IP.
	issue := []gin.HandlerFunc{}
	if cfg.RateLimitIssueEnabled {
		issue = append(issue, httputil.RateLimitMiddleware(ctx, httputil.RateLimitConfig{
			RequestsPerSec: cfg.RateLimitIssueRequestsPerSec,
			Burst:          cfg.RateLimitIssueBurst,
			Key:            httputil.ClientIPKey,
			Message:        "Too many token requests. Please retry later.",
		}, s.logger))
	}
	tokens := v1.Group("/tokens")
	{
		tokens.POST("", append(issue, handlers.Token.IssueHandler)...)
		tokens.GET("/:token_id", handlers.Token.GetHandler)
		tokens.DELETE("/:token_id", handlers.Token.DeactivateHandler)
	}

	v1.GET("/businesses/:"+businessHTTP.BusinessIDParam, handlers.Business.GetHandler)

	authenticated := v1.Group("/businesses/:" + businessHTTP.BusinessIDParam)
	authenticated.Use(businessHTTP.AuthenticationMiddleware(businessUseCase, s.logger))
	{
		authenticated.PUT("", handlers.Business.UpdateHandler)
		authenticated.GET("/dashboard", handlers.Dashboard.GetHandler)

		scan := []gin.HandlerFunc{}
		if cfg.RateLimitScanEnabled {
			scan = append(scan, httputil.RateLimitMiddleware(ctx, httputil.RateLimitConfig{
				RequestsPerSec: cfg.RateLimitScanRequestsPerSec,
				Burst:          cfg.RateLimitScanBurst,
				Key:            httputil.ParamKey(businessHTTP.BusinessIDParam),
				Message:        "Too many scans for this business. Please retry later.",
			}, s.logger))
		}
		authenticated.POST("/scans", append(scan, handlers.Scan.ScanHandler)...)
	}

	customers := v1.Group("/customers/:" + ledgerHTTP.CustomerIDParam)
	{
		customers.GET("/cards", handlers.Card.ListHandler)
		customers.GET("/cards/:"+businessHTTP.BusinessIDParam, handlers.Card.GetHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
