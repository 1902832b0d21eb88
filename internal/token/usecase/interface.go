// Package usecase defines interfaces and implementations for token registry use cases.
package usecase

import (
	"context"
	"time"

	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// TokenRepository defines the interface for token record persistence.
type TokenRepository interface {
	// Create persists a new record. Returns ErrTokenAlreadyExists when the token id is taken.
	Create(ctx context.Context, record *tokenDomain.TokenRecord) error
	Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error)

	// Deactivate marks the record inactive, keeping the first revocation timestamp.
	// Absent and already inactive records are not an error.
	Deactivate(ctx context.Context, tokenID string, revokedAt time.Time) error
}

// TokenUseCase defines the token registry operations.
type TokenUseCase interface {
	// Issue builds a token with a fresh random id, registers it and renders its QR code.
	Issue(ctx context.Context, input *tokenDomain.IssueTokenInput) (*tokenDomain.IssueTokenOutput, error)

	// Register persists an already built token as an active record.
	Register(ctx context.Context, token *tokenDomain.Token) (*tokenDomain.TokenRecord, error)

	Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error)

	// IsActive returns false both for unknown and for revoked token ids.
	IsActive(ctx context.Context, tokenID string) (bool, error)

	// Status distinguishes unknown from revoked token ids.
	Status(ctx context.Context, tokenID string) (tokenDomain.TokenStatus, error)

	// Deactivate revokes the token. It is idempotent.
	Deactivate(ctx context.Context, tokenID string) error
}
