// Package database provides database connection management and utilities.
package database

import (
	"context"
	"database/sql"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// txKey is a context key type for storing database transactions.
type txKey struct{}

// levelTxKey is a context key type for storing LevelDB transactions.
type levelTxKey struct{}

// Querier represents a database query executor (either *sql.DB or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LevelQuerier represents a LevelDB key-value executor (either *leveldb.DB or *leveldb.Transaction).
type LevelQuerier interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	Has(key []byte, ro *opt.ReadOptions) (bool, error)
	Put(key, value []byte, wo *opt.WriteOptions) error
	Delete(key []byte, wo *opt.WriteOptions) error
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

// TxManager manages database transactions.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// sqlTxManager implements TxManager for SQL databases.
type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager for the given database.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// WithTx executes the function within a database transaction.
// A transaction already present in ctx is reused so repositories can compose.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return ClassifyError(err, "failed to begin transaction")
	}

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ClassifyError(err, "failed to commit transaction")
	}
	return nil
}

// GetTx retrieves a transaction from context, or returns the DB connection.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// levelTxManager implements TxManager for LevelDB.
//
// LevelDB transactions are exclusive: while one is open every other write and
// transaction blocks until it is committed or discarded. Repositories rely on this
// to run read-check-write sequences (create-if-absent, compare-and-swap) atomically.
type levelTxManager struct {
	db *leveldb.DB
}

// NewLevelTxManager creates a new TxManager for the given LevelDB database.
func NewLevelTxManager(db *leveldb.DB) TxManager {
	return &levelTxManager{db: db}
}

// WithTx executes the function within an exclusive LevelDB transaction.
// A transaction already present in ctx is reused; opening a second one would deadlock.
func (m *levelTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(levelTxKey{}).(*leveldb.Transaction); ok {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tr, err := m.db.OpenTransaction()
	if err != nil {
		return ClassifyError(err, "failed to open leveldb transaction")
	}

	ctx = context.WithValue(ctx, levelTxKey{}, tr)

	if err := fn(ctx); err != nil {
		tr.Discard()
		return err
	}

	if err := tr.Commit(); err != nil {
		return ClassifyError(err, "failed to commit leveldb transaction")
	}
	return nil
}

// GetLevelTx retrieves a LevelDB transaction from context, or returns the database handle.
func GetLevelTx(ctx context.Context, db *leveldb.DB) LevelQuerier {
	if tr, ok := ctx.Value(levelTxKey{}).(*leveldb.Transaction); ok {
		return tr
	}
	return db
}
