package app

import (
	"fmt"

	businessHTTP "github.com/allisson/stampd/internal/business/http"
	businessLevelDB "github.com/allisson/stampd/internal/business/repository/leveldb"
	businessMySQL "github.com/allisson/stampd/internal/business/repository/mysql"
	businessPostgreSQL "github.com/allisson/stampd/internal/business/repository/postgresql"
	businessService "github.com/allisson/stampd/internal/business/service"
	businessUsecase "github.com/allisson/stampd/internal/business/usecase"
	"github.com/allisson/stampd/internal/database"
)

// BusinessRepository returns the business profile repository based on database driver.
func (c *Container) BusinessRepository() (businessUsecase.BusinessRepository, error) {
	var err error
	c.businessRepositoryInit.Do(func() {
		c.businessRepository, err = c.initBusinessRepository()
		if err != nil {
			c.initErrors["businessRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessRepository"]; exists {
		return nil, storedErr
	}
	return c.businessRepository, nil
}

// SecretService returns the service that generates and verifies business scan secrets.
func (c *Container) SecretService() businessService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = businessService.NewSecretService()
	})
	return c.secretService
}

// BusinessUseCase returns the business directory use case.
func (c *Container) BusinessUseCase() (businessUsecase.BusinessUseCase, error) {
	var err error
	c.businessUseCaseInit.Do(func() {
		c.businessUseCase, err = c.initBusinessUseCase()
		if err != nil {
			c.initErrors["businessUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessUseCase"]; exists {
		return nil, storedErr
	}
	return c.businessUseCase, nil
}

// BusinessHandler returns the HTTP handler for business profiles.
func (c *Container) BusinessHandler() (*businessHTTP.BusinessHandler, error) {
	var err error
	c.businessHandlerInit.Do(func() {
		c.businessHandler, err = c.initBusinessHandler()
		if err != nil {
			c.initErrors["businessHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessHandler"]; exists {
		return nil, storedErr
	}
	return c.businessHandler, nil
}

// initBusinessRepository creates the business repository based on the database driver.
func (c *Container) initBusinessRepository() (businessUsecase.BusinessRepository, error) {
	switch c.config.DBDriver {
	case database.DriverLevelDB:
		db, err := c.LevelDB()
		if err != nil {
			return nil, fmt.Errorf("failed to get leveldb for business repository: %w", err)
		}
		return businessLevelDB.NewLevelDBBusinessRepository(db), nil
	case database.DriverPostgres:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for business repository: %w", err)
		}
		return businessPostgreSQL.NewPostgreSQLBusinessRepository(db), nil
	case database.DriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for business repository: %w", err)
		}
		return businessMySQL.NewMySQLBusinessRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initBusinessUseCase creates the business use case, wrapped with metrics when enabled.
func (c *Container) initBusinessUseCase() (businessUsecase.BusinessUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for business use case: %w", err)
	}

	businessRepository, err := c.BusinessRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get business repository for business use case: %w", err)
	}

	baseUseCase := businessUsecase.NewBusinessUseCase(
		txManager,
		businessRepository,
		c.SecretService(),
		int64(c.config.DefaultStampsNeeded),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for business use case: %w", err)
		}
		return businessUsecase.NewBusinessUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initBusinessHandler creates the business HTTP handler.
func (c *Container) initBusinessHandler() (*businessHTTP.BusinessHandler, error) {
	businessUseCase, err := c.BusinessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get business use case for business handler: %w", err)
	}
	return businessHTTP.NewBusinessHandler(businessUseCase, c.Logger()), nil
}
