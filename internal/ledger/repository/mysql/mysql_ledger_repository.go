// Package mysql implements ledger record persistence for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/stampd/internal/database"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

const ledgerColumns = `customer_id, business_id, customer_email, business_name, current_stamps, stamps_needed,
			  reward_description, claimed, business_verified, version, created_at, last_visit_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*ledgerDomain.LedgerRecord, error) {
	var r ledgerDomain.LedgerRecord
	err := row.Scan(
		&r.CustomerID,
		&r.BusinessID,
		&r.CustomerEmail,
		&r.BusinessName,
		&r.CurrentStamps,
		&r.StampsNeeded,
		&r.RewardDescription,
		&r.Claimed,
		&r.BusinessVerified,
		&r.Version,
		&r.CreatedAt,
		&r.LastVisitAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// MySQLLedgerRepository implements ledger persistence for MySQL.
// The (customer_id, business_id) primary key makes creation insert-only.
type MySQLLedgerRepository struct {
	db *sql.DB
}

// Create inserts a new record. Returns ErrLedgerRecordAlreadyExists when the pair is taken.
func (m *MySQLLedgerRepository) Create(ctx context.Context, record *ledgerDomain.LedgerRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO stamp_ledger (` + ledgerColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.CustomerID,
		record.BusinessID,
		record.CustomerEmail,
		record.BusinessName,
		record.CurrentStamps,
		record.StampsNeeded,
		record.RewardDescription,
		record.Claimed,
		record.BusinessVerified,
		record.Version,
		record.CreatedAt,
		record.LastVisitAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ledgerDomain.ErrLedgerRecordAlreadyExists
		}
		return database.ClassifyError(err, "failed to create ledger record")
	}
	return nil
}

// Get retrieves the record of a customer at a business. Returns ErrLedgerRecordNotFound if absent.
func (m *MySQLLedgerRepository) Get(
	ctx context.Context,
	customerID, businessID string,
) (*ledgerDomain.LedgerRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + ledgerColumns + `
			  FROM stamp_ledger WHERE customer_id = ? AND business_id = ?`

	record, err := scanRecord(querier.QueryRowContext(ctx, query, customerID, businessID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerDomain.ErrLedgerRecordNotFound
		}
		return nil, database.ClassifyError(err, "failed to get ledger record")
	}
	return record, nil
}

// ApplyStampIncrement performs the version guarded update.
func (m *MySQLLedgerRepository) ApplyStampIncrement(
	ctx context.Context,
	inc *ledgerDomain.StampIncrement,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE stamp_ledger
			  SET current_stamps = ?,
			      claimed = claimed OR ?,
			      business_verified = TRUE,
			      version = version + 1,
			      last_visit_at = ?
			  WHERE customer_id = ? AND business_id = ? AND version = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		inc.NewStamps,
		inc.Claimed,
		inc.VisitedAt,
		inc.CustomerID,
		inc.BusinessID,
		inc.ExpectedVersion,
	)
	if err != nil {
		return database.ClassifyError(err, "failed to apply stamp increment")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return database.ClassifyError(err, "failed to apply stamp increment")
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM stamp_ledger WHERE customer_id = ? AND business_id = ?)`
	if err := querier.QueryRowContext(ctx, existsQuery, inc.CustomerID, inc.BusinessID).Scan(&exists); err != nil {
		return database.ClassifyError(err, "failed to check ledger record")
	}
	if !exists {
		return ledgerDomain.ErrLedgerRecordNotFound
	}
	return ledgerDomain.ErrLedgerConflict
}

// ListByCustomer returns every record of customerID, most recently visited first.
func (m *MySQLLedgerRepository) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]*ledgerDomain.LedgerRecord, error) {
	query := `SELECT ` + ledgerColumns + `
			  FROM stamp_ledger WHERE customer_id = ?
			  ORDER BY last_visit_at DESC, business_id ASC`

	return m.list(ctx, query, customerID)
}

// ListByBusiness returns up to limit records of businessID, most recently visited first.
func (m *MySQLLedgerRepository) ListByBusiness(
	ctx context.Context,
	businessID string,
	limit int,
) ([]*ledgerDomain.LedgerRecord, error) {
	query := `SELECT ` + ledgerColumns + `
			  FROM stamp_ledger WHERE business_id = ?
			  ORDER BY last_visit_at DESC, customer_id ASC
			  LIMIT ?`

	return m.list(ctx, query, businessID, limit)
}

// CountByBusiness returns how many customers hold a card at businessID.
func (m *MySQLLedgerRepository) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	query := `SELECT COUNT(*) FROM stamp_ledger WHERE business_id = ?`
	if err := querier.QueryRowContext(ctx, query, businessID).Scan(&count); err != nil {
		return 0, database.ClassifyError(err, "failed to count ledger records")
	}
	return count, nil
}

func (m *MySQLLedgerRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*ledgerDomain.LedgerRecord, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.ClassifyError(err, "failed to list ledger records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*ledgerDomain.LedgerRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, database.ClassifyError(err, "failed to scan ledger record")
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, database.ClassifyError(err, "failed to iterate ledger records")
	}

	return records, nil
}

// NewMySQLLedgerRepository creates a new MySQL ledger repository.
func NewMySQLLedgerRepository(db *sql.DB) *MySQLLedgerRepository {
	return &MySQLLedgerRepository{db: db}
}
