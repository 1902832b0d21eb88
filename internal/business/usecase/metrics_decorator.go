package usecase

import (
	"context"
	"time"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	"github.com/allisson/stampd/internal/metrics"
)

// businessUseCaseWithMetrics decorates BusinessUseCase with metrics instrumentation.
type businessUseCaseWithMetrics struct {
	next    BusinessUseCase
	metrics metrics.BusinessMetrics
}

// NewBusinessUseCaseWithMetrics wraps a BusinessUseCase with metrics recording.
func NewBusinessUseCaseWithMetrics(useCase BusinessUseCase, m metrics.BusinessMetrics) BusinessUseCase {
	return &businessUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (b *businessUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "business", operation, status)
	b.metrics.RecordDuration(ctx, "business", operation, time.Since(start), status)
}

// Register records metrics for business onboarding.
func (b *businessUseCaseWithMetrics) Register(
	ctx context.Context,
	input *businessDomain.RegisterBusinessInput,
) (*businessDomain.RegisterBusinessOutput, error) {
	start := time.Now()
	output, err := b.next.Register(ctx, input)
	b.record(ctx, "business_register", start, err)
	return output, err
}

// Update records metrics for profile updates.
func (b *businessUseCaseWithMetrics) Update(
	ctx context.Context,
	input *businessDomain.UpdateBusinessInput,
) (*businessDomain.Business, error) {
	start := time.Now()
	business, err := b.next.Update(ctx, input)
	b.record(ctx, "business_update", start, err)
	return business, err
}

// Get records metrics for profile lookups.
func (b *businessUseCaseWithMetrics) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	start := time.Now()
	business, err := b.next.Get(ctx, businessID)
	b.record(ctx, "business_get", start, err)
	return business, err
}

// IsOperational records metrics for operational checks.
func (b *businessUseCaseWithMetrics) IsOperational(ctx context.Context, businessID string) (bool, error) {
	start := time.Now()
	ok, err := b.next.IsOperational(ctx, businessID)
	b.record(ctx, "business_is_operational", start, err)
	return ok, err
}

// RecordScan records metrics for statistics updates.
func (b *businessUseCaseWithMetrics) RecordScan(
	ctx context.Context,
	businessID string,
	stampsGiven int64,
	rewardEarned bool,
) error {
	start := time.Now()
	err := b.next.RecordScan(ctx, businessID, stampsGiven, rewardEarned)
	b.record(ctx, "business_record_scan", start, err)
	return err
}

// Authenticate records metrics for credential checks.
func (b *businessUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	businessID, secret string,
) (*businessDomain.Business, error) {
	start := time.Now()
	business, err := b.next.Authenticate(ctx, businessID, secret)
	b.record(ctx, "business_authenticate", start, err)
	return business, err
}

// DailyStats records metrics for statistics reads.
func (b *businessUseCaseWithMetrics) DailyStats(
	ctx context.Context,
	businessID string,
	days int,
) ([]*businessDomain.DailyStats, error) {
	start := time.Now()
	stats, err := b.next.DailyStats(ctx, businessID, days)
	b.record(ctx, "business_daily_stats", start, err)
	return stats, err
}
