// Package postgresql implements token record persistence for PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/stampd/internal/database"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// PostgreSQLTokenRepository implements token record persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new token record. Returns ErrTokenAlreadyExists on a duplicate token id.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, record *tokenDomain.TokenRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO qr_tokens (token_id, token_type, customer_id, customer_email, business_id, is_active, issued_at, revoked_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

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
func (p *PostgreSQLTokenRepository) Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT token_id, token_type, customer_id, customer_email, business_id, is_active, issued_at, revoked_at
			  FROM qr_tokens WHERE token_id = $1`

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
func (p *PostgreSQLTokenRepository) Deactivate(ctx context.Context, tokenID string, revokedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE qr_tokens
			  SET is_active = FALSE,
			      revoked_at = COALESCE(revoked_at, $2)
			  WHERE token_id = $1`

	if _, err := querier.ExecContext(ctx, query, tokenID, revokedAt); err != nil {
		return database.ClassifyError(err, "failed to deactivate token")
	}
	return nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}
