package usecase

import (
	"context"

	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

type cardUseCase struct {
	ledgerRepo LedgerRepository
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(ledgerRepo LedgerRepository) CardUseCase {
	return &cardUseCase{ledgerRepo: ledgerRepo}
}

// ListByCustomer returns every card of customerID. A customer without cards gets an empty list.
func (c *cardUseCase) ListByCustomer(ctx context.Context, customerID string) ([]*ledgerDomain.LedgerRecord, error) {
	records, err := c.ledgerRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*ledgerDomain.LedgerRecord{}
	}
	return records, nil
}

// Get returns the card of customerID at businessID.
func (c *cardUseCase) Get(ctx context.Context, customerID, businessID string) (*ledgerDomain.LedgerRecord, error) {
	return c.ledgerRepo.Get(ctx, customerID, businessID)
}
