package app

import (
	"fmt"

	"github.com/allisson/stampd/internal/database"
	ledgerHTTP "github.com/allisson/stampd/internal/ledger/http"
	ledgerLevelDB "github.com/allisson/stampd/internal/ledger/repository/leveldb"
	ledgerMySQL "github.com/allisson/stampd/internal/ledger/repository/mysql"
	ledgerPostgreSQL "github.com/allisson/stampd/internal/ledger/repository/postgresql"
	ledgerUsecase "github.com/allisson/stampd/internal/ledger/usecase"
)

// LedgerRepository returns the stamp ledger repository based on database driver.
func (c *Container) LedgerRepository() (ledgerUsecase.LedgerRepository, error) {
	var err error
	c.ledgerRepositoryInit.Do(func() {
		c.ledgerRepository, err = c.initLedgerRepository()
		if err != nil {
			c.initErrors["ledgerRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ledgerRepository"]; exists {
		return nil, storedErr
	}
	return c.ledgerRepository, nil
}

// StampUseCase returns the scan engine, decorated with transient retries and metrics.
func (c *Container) StampUseCase() (ledgerUsecase.StampUseCase, error) {
	var err error
	c.stampUseCaseInit.Do(func() {
		c.stampUseCase, err = c.initStampUseCase()
		if err != nil {
			c.initErrors["stampUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stampUseCase"]; exists {
		return nil, storedErr
	}
	return c.stampUseCase, nil
}

// CardUseCase returns the customer card read use case.
func (c *Container) CardUseCase() (ledgerUsecase.CardUseCase, error) {
	var err error
	c.cardUseCaseInit.Do(func() {
		c.cardUseCase, err = c.initCardUseCase()
		if err != nil {
			c.initErrors["cardUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardUseCase"]; exists {
		return nil, storedErr
	}
	return c.cardUseCase, nil
}

// DashboardUseCase returns the business dashboard use case.
func (c *Container) DashboardUseCase() (ledgerUsecase.DashboardUseCase, error) {
	var err error
	c.dashboardUseCaseInit.Do(func() {
		c.dashboardUseCase, err = c.initDashboardUseCase()
		if err != nil {
			c.initErrors["dashboardUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dashboardUseCase"]; exists {
		return nil, storedErr
	}
	return c.dashboardUseCase, nil
}

// ScanHandler returns the HTTP handler for scans.
func (c *Container) ScanHandler() (*ledgerHTTP.ScanHandler, error) {
	var err error
	c.scanHandlerInit.Do(func() {
		var stampUseCase ledgerUsecase.StampUseCase
		stampUseCase, err = c.StampUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get stamp use case for scan handler: %w", err)
			c.initErrors["scanHandler"] = err
			return
		}
		c.scanHandler = ledgerHTTP.NewScanHandler(stampUseCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["scanHandler"]; exists {
		return nil, storedErr
	}
	return c.scanHandler, nil
}

// CardHandler returns the HTTP handler for customer cards.
func (c *Container) CardHandler() (*ledgerHTTP.CardHandler, error) {
	var err error
	c.cardHandlerInit.Do(func() {
		var cardUseCase ledgerUsecase.CardUseCase
		cardUseCase, err = c.CardUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get card use case for card handler: %w", err)
			c.initErrors["cardHandler"] = err
			return
		}
		c.cardHandler = ledgerHTTP.NewCardHandler(cardUseCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardHandler"]; exists {
		return nil, storedErr
	}
	return c.cardHandler, nil
}

// DashboardHandler returns the HTTP handler for business dashboards.
func (c *Container) DashboardHandler() (*ledgerHTTP.DashboardHandler, error) {
	var err error
	c.dashboardHandlerInit.Do(func() {
		var dashboardUseCase ledgerUsecase.DashboardUseCase
		dashboardUseCase, err = c.DashboardUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get dashboard use case for dashboard handler: %w", err)
			c.initErrors["dashboardHandler"] = err
			return
		}
		c.dashboardHandler = ledgerHTTP.NewDashboardHandler(
			dashboardUseCase,
			c.config.DashboardRecentLimit,
			c.Logger(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dashboardHandler"]; exists {
		return nil, storedErr
	}
	return c.dashboardHandler, nil
}

// initLedgerRepository creates the ledger repository based on the database driver.
func (c *Container) initLedgerRepository() (ledgerUsecase.LedgerRepository, error) {
	switch c.config.DBDriver {
	case database.DriverLevelDB:
		db, err := c.LevelDB()
		if err != nil {
			return nil, fmt.Errorf("failed to get leveldb for ledger repository: %w", err)
		}
		return ledgerLevelDB.NewLevelDBLedgerRepository(db), nil
	case database.DriverPostgres:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for ledger repository: %w", err)
		}
		return ledgerPostgreSQL.NewPostgreSQLLedgerRepository(db), nil
	case database.DriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for ledger repository: %w", err)
		}
		return ledgerMySQL.NewMySQLLedgerRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initStampUseCase creates the scan engine. Metrics wrap the retries so each scan is
// observed once regardless of how many attempts it took.
func (c *Container) initStampUseCase() (ledgerUsecase.StampUseCase, error) {
	logger := c.Logger()

	ledgerRepository, err := c.LedgerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger repository for stamp use case: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for stamp use case: %w", err)
	}

	businessUseCase, err := c.BusinessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get business use case for stamp use case: %w", err)
	}

	useCase := ledgerUsecase.NewStampUseCase(
		ledgerRepository,
		tokenUseCase,
		businessUseCase,
		logger,
		c.config.ScanConflictRetries,
	)

	if c.config.ScanTransientRetries > 0 {
		useCase = ledgerUsecase.NewStampUseCaseWithRetry(
			useCase,
			c.config.ScanTransientRetries,
			c.config.ScanTransientBackoff,
			logger,
		)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for stamp use case: %w", err)
		}
		useCase = ledgerUsecase.NewStampUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initCardUseCase creates the customer card use case.
func (c *Container) initCardUseCase() (ledgerUsecase.CardUseCase, error) {
	ledgerRepository, err := c.LedgerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger repository for card use case: %w", err)
	}
	return ledgerUsecase.NewCardUseCase(ledgerRepository), nil
}

// initDashboardUseCase creates the dashboard use case, wrapped with metrics when enabled.
func (c *Container) initDashboardUseCase() (ledgerUsecase.DashboardUseCase, error) {
	ledgerRepository, err := c.LedgerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger repository for dashboard use case: %w", err)
	}

	businessUseCase, err := c.BusinessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get business use case for dashboard use case: %w", err)
	}

	baseUseCase := ledgerUsecase.NewDashboardUseCase(
		ledgerRepository,
		businessUseCase,
		c.config.DashboardStatsDays,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for dashboard use case: %w", err)
		}
		return ledgerUsecase.NewDashboardUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
