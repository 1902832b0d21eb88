package usecase

import (
	"context"
	"time"

	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
	"github.com/allisson/stampd/internal/metrics"
)

// stampUseCaseWithMetrics decorates StampUseCase with metrics instrumentation.
type stampUseCaseWithMetrics struct {
	next    StampUseCase
	metrics metrics.BusinessMetrics
}

// NewStampUseCaseWithMetrics wraps a StampUseCase with metrics recording.
// Rejected scans are recorded with their failure reason as the status and scan outcome.
func NewStampUseCaseWithMetrics(useCase StampUseCase, m metrics.BusinessMetrics) StampUseCase {
	return &stampUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ScanToken records metrics for scans.
func (s *stampUseCaseWithMetrics) ScanToken(
	ctx context.Context,
	rawToken, businessID, businessDisplayName string,
) (*ledgerDomain.ScanResult, error) {
	start := time.Now()
	result, err := s.next.ScanToken(ctx, rawToken, businessID, businessDisplayName)

	status := metrics.ScanOutcomeSuccess
	switch {
	case err != nil:
		status = "error"
	case result != nil && !result.Success:
		status = string(result.Reason)
	}

	s.metrics.RecordOperation(ctx, "ledger", "ledger_scan", status)
	s.metrics.RecordDuration(ctx, "ledger", "ledger_scan", time.Since(start), status)
	if result != nil {
		s.metrics.RecordScan(ctx, status, result.IsNewCard, result.RewardEarned)
	} else {
		s.metrics.RecordScan(ctx, status, false, false)
	}
	return result, err
}

// dashboardUseCaseWithMetrics decorates DashboardUseCase with metrics instrumentation.
type dashboardUseCaseWithMetrics struct {
	next    DashboardUseCase
	metrics metrics.BusinessMetrics
}

// NewDashboardUseCaseWithMetrics wraps a DashboardUseCase with metrics recording.
func NewDashboardUseCaseWithMetrics(useCase DashboardUseCase, m metrics.BusinessMetrics) DashboardUseCase {
	return &dashboardUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Get records metrics for dashboard reads.
func (d *dashboardUseCaseWithMetrics) Get(
	ctx context.Context,
	businessID string,
	recentLimit int,
) (*ledgerDomain.Dashboard, error) {
	start := time.Now()
	dashboard, err := d.next.Get(ctx, businessID, recentLimit)

	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordOperation(ctx, "ledger", "ledger_dashboard", status)
	d.metrics.RecordDuration(ctx, "ledger", "ledger_dashboard", time.Since(start), status)
	return dashboard, err
}
