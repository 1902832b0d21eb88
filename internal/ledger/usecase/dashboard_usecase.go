package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

type dashboardUseCase struct {
	ledgerRepo LedgerRepository
	businesses BusinessReader
	statsDays  int
}

// NewDashboardUseCase creates a new DashboardUseCase showing statsDays days of daily statistics.
func NewDashboardUseCase(ledgerRepo LedgerRepository, businesses BusinessReader, statsDays int) DashboardUseCase {
	if statsDays < 1 {
		statsDays = 1
	}
	return &dashboardUseCase{
		ledgerRepo: ledgerRepo,
		businesses: businesses,
		statsDays:  statsDays,
	}
}

// Get loads the business profile, customer count, recent activity and daily statistics concurrently.
func (d *dashboardUseCase) Get(
	ctx context.Context,
	businessID string,
	recentLimit int,
) (*ledgerDomain.Dashboard, error) {
	var (
		business *businessDomain.Business
		total    int64
		recent   []*ledgerDomain.LedgerRecord
		stats    []*businessDomain.DailyStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		business, err = d.businesses.Get(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = d.ledgerRepo.CountByBusiness(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = d.ledgerRepo.ListByBusiness(gctx, businessID, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = d.businesses.DailyStats(gctx, businessID, d.statsDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []*ledgerDomain.LedgerRecord{}
	}
	if stats == nil {
		stats = []*businessDomain.DailyStats{}
	}

	return &ledgerDomain.Dashboard{
		Business:       business,
		TotalCustomers: total,
		RecentActivity: recent,
		DailyStats:     stats,
	}, nil
}
