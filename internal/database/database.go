// Package database provides database connection management and utilities.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// Supported values for the DB_DRIVER setting.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverLevelDB  = "leveldb"
)

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect establishes a database connection with the given configuration.
func Connect(cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenLevelDB opens (or creates) the embedded LevelDB document store at path.
// An empty path opens a volatile in-memory store, used for tests and local demos.
func OpenLevelDB(path string) (*leveldb.DB, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		db, err := leveldb.Open(storage.NewMemStorage(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open in-memory leveldb: %w", err)
		}
		return db, nil
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve leveldb path: %w", err)
	}

	db, err := leveldb.OpenFile(abs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb: %w", err)
	}
	return db, nil
}

// LevelDBPinger adapts a LevelDB handle to the PingContext readiness check used for SQL pools.
type LevelDBPinger struct {
	DB *leveldb.DB
}

// PingContext reports an error once the store has been closed.
func (p LevelDBPinger) PingContext(_ context.Context) error {
	if p.DB == nil {
		return leveldb.ErrClosed
	}
	_, err := p.DB.GetProperty("leveldb.num-files-at-level0")
	return err
}
