package app

import (
	"fmt"

	"github.com/allisson/stampd/internal/database"
	tokenHTTP "github.com/allisson/stampd/internal/token/http"
	tokenLevelDB "github.com/allisson/stampd/internal/token/repository/leveldb"
	tokenMySQL "github.com/allisson/stampd/internal/token/repository/mysql"
	tokenPostgreSQL "github.com/allisson/stampd/internal/token/repository/postgresql"
	tokenService "github.com/allisson/stampd/internal/token/service"
	tokenUsecase "github.com/allisson/stampd/internal/token/usecase"
)

// TokenRepository returns the token record repository based on database driver.
func (c *Container) TokenRepository() (tokenUsecase.TokenRepository, error) {
	var err error
	c.tokenRepositoryInit.Do(func() {
		c.tokenRepository, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepository"]; exists {
		return nil, storedErr
	}
	return c.tokenRepository, nil
}

// QRCodeRenderer returns the renderer used for issued token images.
func (c *Container) QRCodeRenderer() tokenService.QRCodeRenderer {
	c.qrCodeRendererInit.Do(func() {
		c.qrCodeRenderer = tokenService.NewQRCodeRenderer(c.config.QRCodeSize)
	})
	return c.qrCodeRenderer
}

// TokenUseCase returns the token registry use case.
func (c *Container) TokenUseCase() (tokenUsecase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for token issuance and revocation.
func (c *Container) TokenHandler() (*tokenHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initTokenRepository creates the token repository based on the database driver.
func (c *Container) initTokenRepository() (tokenUsecase.TokenRepository, error) {
	switch c.config.DBDriver {
	case database.DriverLevelDB:
		db, err := c.LevelDB()
		if err != nil {
			return nil, fmt.Errorf("failed to get leveldb for token repository: %w", err)
		}
		return tokenLevelDB.NewLevelDBTokenRepository(db), nil
	case database.DriverPostgres:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for token repository: %w", err)
		}
		return tokenPostgreSQL.NewPostgreSQLTokenRepository(db), nil
	case database.DriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for token repository: %w", err)
		}
		return tokenMySQL.NewMySQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case, wrapped with metrics when enabled.
func (c *Container) initTokenUseCase() (tokenUsecase.TokenUseCase, error) {
	tokenRepository, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	baseUseCase := tokenUsecase.NewTokenUseCase(tokenRepository, c.QRCodeRenderer())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return tokenUsecase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler.
func (c *Container) initTokenHandler() (*tokenHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}
	return tokenHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}
