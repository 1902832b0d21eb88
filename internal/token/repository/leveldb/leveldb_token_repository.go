// Package leveldb implements token record persistence on an embedded LevelDB store.
package leveldb

import (
	"context"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/allisson/stampd/internal/database"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

const tokenKeyPrefix = "token:"

// tokenDocument is the JSON form of a token record stored under token:<token_id>.
type tokenDocument struct {
	TokenID       string     `json:"token_id"`
	Type          string     `json:"token_type"`
	CustomerID    string     `json:"customer_id"`
	CustomerEmail string     `json:"customer_email"`
	BusinessID    string     `json:"business_id,omitempty"`
	IsActive      bool       `json:"is_active"`
	IssuedAt      time.Time  `json:"issued_at"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
}

func toDocument(r *tokenDomain.TokenRecord) *tokenDocument {
	return &tokenDocument{
		TokenID:       r.TokenID,
		Type:          string(r.Type),
		CustomerID:    r.CustomerID,
		CustomerEmail: r.CustomerEmail,
		BusinessID:    r.BusinessID,
		IsActive:      r.IsActive,
		IssuedAt:      r.IssuedAt,
		RevokedAt:     r.RevokedAt,
	}
}

func (d *tokenDocument) toRecord() *tokenDomain.TokenRecord {
	return &tokenDomain.TokenRecord{
		TokenID:       d.TokenID,
		Type:          tokenDomain.TokenType(d.Type),
		CustomerID:    d.CustomerID,
		CustomerEmail: d.CustomerEmail,
		BusinessID:    d.BusinessID,
		IsActive:      d.IsActive,
		IssuedAt:      d.IssuedAt,
		RevokedAt:     d.RevokedAt,
	}
}

func tokenKey(tokenID string) []byte {
	return []byte(tokenKeyPrefix + tokenID)
}

// LevelDBTokenRepository implements token record persistence for LevelDB.
// Read-check-write sequences run inside exclusive LevelDB transactions.
type LevelDBTokenRepository struct {
	db        *leveldb.DB
	txManager database.TxManager
}

// Create stores a new token record. Returns ErrTokenAlreadyExists on a duplicate token id.
func (l *LevelDBTokenRepository) Create(ctx context.Context, record *tokenDomain.TokenRecord) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		key := tokenKey(record.TokenID)
		exists, err := querier.Has(key, nil)
		if err != nil {
			return database.ClassifyError(err, "failed to check token")
		}
		if exists {
			return tokenDomain.ErrTokenAlreadyExists
		}

		return database.PutDocument(querier, key, toDocument(record))
	})
}

// Get retrieves a token record by token id. Returns ErrTokenNotFound if absent.
func (l *LevelDBTokenRepository) Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error) {
	querier := database.GetLevelTx(ctx, l.db)

	var doc tokenDocument
	if err := database.GetDocument(querier, tokenKey(tokenID), &doc); err != nil {
		if err == leveldb.ErrNotFound {
			return nil, tokenDomain.ErrTokenNotFound
		}
		return nil, database.ClassifyError(err, "failed to get token")
	}
	return doc.toRecord(), nil
}

// Deactivate marks the token inactive. The first revocation timestamp is kept
// and unknown token ids are ignored.
func (l *LevelDBTokenRepository) Deactivate(ctx context.Context, tokenID string, revokedAt time.Time) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetLevelTx(ctx, l.db)

		key := tokenKey(tokenID)
		var doc tokenDocument
		if err := database.GetDocument(querier, key, &doc); err != nil {
			if err == leveldb.ErrNotFound {
				return nil
			}
			return database.ClassifyError(err, "failed to deactivate token")
		}

		if !doc.IsActive && doc.RevokedAt != nil {
			return nil
		}

		doc.IsActive = false
		if doc.RevokedAt == nil {
			doc.RevokedAt = &revokedAt
		}
		return database.PutDocument(querier, key, &doc)
	})
}

// NewLevelDBTokenRepository creates a new LevelDB token repository.
func NewLevelDBTokenRepository(db *leveldb.DB) *LevelDBTokenRepository {
	return &LevelDBTokenRepository{
		db:        db,
		txManager: database.NewLevelTxManager(db),
	}
}
