// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"gopkg.in/natefinch/lumberjack.v2"

	businessHTTP "github.com/allisson/stampd/internal/business/http"
	businessService "github.com/allisson/stampd/internal/business/service"
	businessUsecase "github.com/allisson/stampd/internal/business/usecase"
	"github.com/allisson/stampd/internal/config"
	"github.com/allisson/stampd/internal/database"
	"github.com/allisson/stampd/internal/http"
	ledgerHTTP "github.com/allisson/stampd/internal/ledger/http"
	ledgerUsecase "github.com/allisson/stampd/internal/ledger/usecase"
	"github.com/allisson/stampd/internal/metrics"
	tokenHTTP "github.com/allisson/stampd/internal/token/http"
	tokenService "github.com/allisson/stampd/internal/token/service"
	tokenUsecase "github.com/allisson/stampd/internal/token/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger    *slog.Logger
	logFile   io.Closer
	db        *sql.DB
	levelDB   *leveldb.DB
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Token registry
	tokenRepository tokenUsecase.TokenRepository
	qrCodeRenderer  tokenService.QRCodeRenderer
	tokenUseCase    tokenUsecase.TokenUseCase
	tokenHandler    *tokenHTTP.TokenHandler

	// Business directory
	businessRepository businessUsecase.BusinessRepository
	secretService      businessService.SecretService
	businessUseCase    businessUsecase.BusinessUseCase
	businessHandler    *businessHTTP.BusinessHandler

	// Ledger
	ledgerRepository ledgerUsecase.LedgerRepository
	stampUseCase     ledgerUsecase.StampUseCase
	cardUseCase      ledgerUsecase.CardUseCase
	dashboardUseCase ledgerUsecase.DashboardUseCase
	scanHandler      *ledgerHTTP.ScanHandler
	cardHandler      *ledgerHTTP.CardHandler
	dashboardHandler *ledgerHTTP.DashboardHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer
	routerCancel  context.CancelFunc

	// Initialization flags and mutex for thread-safety
	mu                     sync.Mutex
	loggerInit             sync.Once
	dbInit                 sync.Once
	levelDBInit            sync.Once
	txManagerInit          sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	tokenRepositoryInit    sync.Once
	qrCodeRendererInit     sync.Once
	tokenUseCaseInit       sync.Once
	tokenHandlerInit       sync.Once
	businessRepositoryInit sync.Once
	secretServiceInit      sync.Once
	businessUseCaseInit    sync.Once
	businessHandlerInit    sync.Once
	ledgerRepositoryInit   sync.Once
	stampUseCaseInit       sync.Once
	cardUseCaseInit        sync.Once
	dashboardUseCaseInit   sync.Once
	scanHandlerInit        sync.Once
	cardHandlerInit        sync.Once
	dashboardHandlerInit   sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log settings in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the SQL database connection. It fails for the leveldb driver.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// LevelDB returns the embedded document store. It fails for the SQL drivers.
func (c *Container) LevelDB() (*leveldb.DB, error) {
	var err error
	c.levelDBInit.Do(func() {
		c.levelDB, err = c.initLevelDB()
		if err != nil {
			c.initErrors["levelDB"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["levelDB"]; exists {
		return nil, storedErr
	}
	return c.levelDB, nil
}

// Pinger returns the readiness probe target of the configured driver.
func (c *Container) Pinger() (http.Pinger, error) {
	if c.config.DBDriver == database.DriverLevelDB {
		db, err := c.LevelDB()
		if err != nil {
			return nil, err
		}
		return database.LevelDBPinger{DB: db}, nil
	}
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	return db, nil
}

// TxManager returns the transaction manager of the configured driver.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the use case metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router already built.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus scrape server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.routerCancel != nil {
		c.routerCancel()
	}

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.levelDB != nil {
		if err := c.levelDB.Close(); err != nil && !errors.Is(err, leveldb.ErrClosed) {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("leveldb close: %w", err))
		}
	}

	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("log file close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates a structured logger from the level, format and optional rotating file settings.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if c.config.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   c.config.LogFile,
			MaxSize:    c.config.LogFileMaxSizeMB,
			MaxBackups: c.config.LogFileMaxBackups,
			MaxAge:     c.config.LogFileMaxAgeDays,
			Compress:   true,
		}
		c.logFile = file
		out = io.MultiWriter(os.Stdout, file)
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if c.config.LogFormat == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler)
}

// initDB creates and configures the SQL database connection.
func (c *Container) initDB() (*sql.DB, error) {
	switch c.config.DBDriver {
	case database.DriverPostgres, database.DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported sql database driver: %s", c.config.DBDriver)
	}

	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initLevelDB opens the embedded document store.
func (c *Container) initLevelDB() (*leveldb.DB, error) {
	if c.config.DBDriver != database.DriverLevelDB {
		return nil, fmt.Errorf("leveldb requested with database driver %s", c.config.DBDriver)
	}
	db, err := database.OpenLevelDB(c.config.LevelDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager matching the database driver.
func (c *Container) initTxManager() (database.TxManager, error) {
	switch c.config.DBDriver {
	case database.DriverLevelDB:
		db, err := c.LevelDB()
		if err != nil {
			return nil, fmt.Errorf("failed to get leveldb for tx manager: %w", err)
		}
		return database.NewLevelTxManager(db), nil
	case database.DriverPostgres, database.DriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initBusinessMetrics builds the recorder on top of the metrics provider.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the API server and mounts every handler.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	pinger, err := c.Pinger()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	handlers, err := c.handlers()
	if err != nil {
		return nil, err
	}

	businessUseCase, err := c.BusinessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get business use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	routerCtx, cancel := context.WithCancel(context.Background())
	c.routerCancel = cancel

	server := http.NewServer(pinger, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(routerCtx, c.config, handlers, businessUseCase, metricsProvider)

	return server, nil
}

// handlers resolves every HTTP handler mounted by the API router.
func (c *Container) handlers() (*http.Handlers, error) {
	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler: %w", err)
	}
	businessHandler, err := c.BusinessHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get business handler: %w", err)
	}
	scanHandler, err := c.ScanHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get scan handler: %w", err)
	}
	cardHandler, err := c.CardHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get card handler: %w", err)
	}
	dashboardHandler, err := c.DashboardHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard handler: %w", err)
	}

	return &http.Handlers{
		Token:     tokenHandler,
		Business:  businessHandler,
		Scan:      scanHandler,
		Card:      cardHandler,
		Dashboard: dashboardHandler,
	}, nil
}

// initMetricsServer creates the Prometheus scrape server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
