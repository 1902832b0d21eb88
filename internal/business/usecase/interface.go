// Package usecase defines interfaces and implementations for the business directory.
package usecase

import (
	"context"
	"time"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
)

// BusinessRepository defines the interface for business profile persistence.
type BusinessRepository interface {
	// Create persists a new profile. Returns ErrBusinessAlreadyExists when the id is taken.
	Create(ctx context.Context, business *businessDomain.Business) error

	Get(ctx context.Context, businessID string) (*businessDomain.Business, error)

	// Update writes the profile fields. Counters are never written here.
	Update(ctx context.Context, business *businessDomain.Business) error

	// IncrementStats atomically adds to the lifetime counters.
	IncrementStats(ctx context.Context, businessID string, stampsGiven, rewards int64) error

	// IncrementDailyStats atomically adds to the counters of the given UTC day, creating the row if needed.
	IncrementDailyStats(ctx context.Context, businessID string, day time.Time, stampsGiven, rewards int64) error

	// ListDailyStats returns the rows for days on or after since, oldest first.
	ListDailyStats(ctx context.Context, businessID string, since time.Time) ([]*businessDomain.DailyStats, error)
}

// BusinessUseCase defines the business directory operations.
type BusinessUseCase interface {
	// Register onboards a business and returns its plain scan secret once.
	Register(
		ctx context.Context,
		input *businessDomain.RegisterBusinessInput,
	) (*businessDomain.RegisterBusinessOutput, error)

	// Update edits profile fields. Existing ledger records keep their threshold snapshot.
	Update(ctx context.Context, input *businessDomain.UpdateBusinessInput) (*businessDomain.Business, error)

	Get(ctx context.Context, businessID string) (*businessDomain.Business, error)

	// IsOperational reports whether the business exists and is active.
	IsOperational(ctx context.Context, businessID string) (bool, error)

	// RecordScan adds a scan to the lifetime and daily counters in one transaction.
	RecordScan(ctx context.Context, businessID string, stampsGiven int64, rewardEarned bool) error

	// Authenticate verifies scan credentials. Inactive businesses still authenticate.
	Authenticate(ctx context.Context, businessID, secret string) (*businessDomain.Business, error)

	// DailyStats returns the counters of the last days UTC days, today included.
	DailyStats(ctx context.Context, businessID string, days int) ([]*businessDomain.DailyStats, error)
}
