// Package mysql implements token record persistence for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/stampd/internal/database"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// MySQLTokenRepository implements token record persistence for MySQL.
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new token record. Returns ErrTokenAlreadyExists on a duplicate token id.
func (m *MySQLTokenRepository) Create(ctx context.Context, record *tokenDomain.TokenRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO qr_tokens (token_id, token_type, customer_id, customer_email, business_id, is_active, issued_at, revoked_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.TokenID,
		string(record.Type),
		record.CustomerID,
		record.CustomerEmail,
		sql.NullString{String: record.BusinessID, Valid: record.BusinessID != ""},
		record.IsActive,
		record.IssuedAt,
		record.RevokedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return tokenDomain.ErrTokenAlreadyExists
		}
		return database.ClassifyError(err, "failed to create token")
	}
	return nil
}

// Get retrieves a token record by token id. Returns ErrTokenNotFound if absent.
func (m *MySQLTokenRepository) Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT token_id, token_type, customer_id, customer_email, business_id, is_active, issued_at, revoked_at
			  FROM qr_tokens WHERE token_id = ?`

	var (
		record     tokenDomain.TokenRecord
		tokenType  string
		businessID sql.NullString
	)

	err := querier.QueryRowContext(ctx, query, tokenID).Scan(
		&record.TokenID,
		&tokenType,
		&record.CustomerID,
		&record.CustomerEmail,
		&businessID,
		&record.IsActive,
		&record.IssuedAt,
		&record.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenDomain.ErrTokenNotFound
		}
		return nil, database.ClassifyError(err, "failed to get token")
	}

	record.Type = tokenDomain.TokenType(tokenType)
	record.BusinessID = businessID.String
	return &record, nil
}

// Deactivate marks the token inactive. The first revocation timestamp is kept.
func (m *MySQLTokenRepository) Deactivate(ctx context.Context, tokenID string, revokedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE qr_tokens
			  SET is_active = FALSE,
			      revoked_at = COALESCE(revoked_at, ?)
			  WHERE token_id = ?`

	if _, err := querier.ExecContext(ctx, query, revokedAt, tokenID); err != nil {
		return database.ClassifyError(err, "failed to deactivate token")
	}
	return nil
}

// NewMySQLTokenRepository creates a new MySQL token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
