// Package usecase defines interfaces and implementations for the stamp engine and
// the ledger read views.
package usecase

import (
	"context"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

// LedgerRepository defines the interface for ledger record persistence.
type LedgerRepository interface {
	// Get returns ErrLedgerRecordNotFound when the customer has no card at the business.
	Get(ctx context.Context, customerID, businessID string) (*ledgerDomain.LedgerRecord, error)

	// Create inserts a new record. It never overwrites: a record that already exists
	// yields ErrLedgerRecordAlreadyExists.
	Create(ctx context.Context, record *ledgerDomain.LedgerRecord) error

	// ApplyStampIncrement writes inc only while the stored version equals inc.ExpectedVersion,
	// bumping the version. Claimed is OR-ed into the stored flag so it never reverts.
	// Returns ErrLedgerConflict on a version mismatch and ErrLedgerRecordNotFound when absent.
	ApplyStampIncrement(ctx context.Context, inc *ledgerDomain.StampIncrement) error

	ListByCustomer(ctx context.Context, customerID string) ([]*ledgerDomain.LedgerRecord, error)

	// ListByBusiness returns up to limit records ordered by most recent visit first.
	ListByBusiness(ctx context.Context, businessID string, limit int) ([]*ledgerDomain.LedgerRecord, error)

	CountByBusiness(ctx context.Context, businessID string) (int64, error)
}

// TokenRegistry is the view of the token registry the stamp engine needs.
type TokenRegistry interface {
	IsActive(ctx context.Context, tokenID string) (bool, error)
}

// BusinessDirectory is the view of the business directory the stamp engine needs.
type BusinessDirectory interface {
	Get(ctx context.Context, businessID string) (*businessDomain.Business, error)
	RecordScan(ctx context.Context, businessID string, stampsGiven int64, rewardEarned bool) error
}

// BusinessReader is the view of the business directory the dashboard needs.
type BusinessReader interface {
	Get(ctx context.Context, businessID string) (*businessDomain.Business, error)
	DailyStats(ctx context.Context, businessID string, days int) ([]*businessDomain.DailyStats, error)
}

// StampUseCase processes scans.
type StampUseCase interface {
	// ScanToken validates rawToken for businessID and applies one stamp.
	// Rejected scans return a result with Success=false and a nil error; store
	// failures return a nil result and the error.
	ScanToken(ctx context.Context, rawToken, businessID, businessDisplayName string) (*ledgerDomain.ScanResult, error)
}

// CardUseCase exposes a customer's ledger records.
type CardUseCase interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*ledgerDomain.LedgerRecord, error)
	Get(ctx context.Context, customerID, businessID string) (*ledgerDomain.LedgerRecord, error)
}

// DashboardUseCase composes the business dashboard.
type DashboardUseCase interface {
	// Get returns the dashboard with up to recentLimit recent ledger entries.
	Get(ctx context.Context, businessID string, recentLimit int) (*ledgerDomain.Dashboard, error)
}
