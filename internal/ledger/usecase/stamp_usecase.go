package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	apperrors "github.com/allisson/stampd/internal/errors"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// stampUseCase implements StampUseCase.
type stampUseCase struct {
	ledgerRepo      LedgerRepository
	tokens          TokenRegistry
	businesses      BusinessDirectory
	logger          *slog.Logger
	conflictRetries int
	now             func() time.Time
}

// NewStampUseCase creates a new StampUseCase. conflictRetries bounds the optimistic
// concurrency retries of a single ledger update and falls back to 1 when not positive.
func NewStampUseCase(
	ledgerRepo LedgerRepository,
	tokens TokenRegistry,
	businesses BusinessDirectory,
	logger *slog.Logger,
	conflictRetries int,
) StampUseCase {
	if conflictRetries < 1 {
		conflictRetries = 1
	}
	return &stampUseCase{
		ledgerRepo:      ledgerRepo,
		tokens:          tokens,
		businesses:      businesses,
		logger:          logger,
		conflictRetries: conflictRetries,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// ScanToken runs the validation chain and, when every check passes, applies the stamp.
// Nothing is written before the token and the business are both accepted.
func (s *stampUseCase) ScanToken(
	ctx context.Context,
	rawToken, businessID, businessDisplayName string,
) (*ledgerDomain.ScanResult, error) {
	token, err := tokenDomain.Decode(rawToken)
	if err != nil {
		return ledgerDomain.FailedScan(ledgerDomain.ReasonInvalidFormat), nil
	}

	if err := token.Validate(); err != nil || !token.AcceptedAt(businessID) {
		return ledgerDomain.FailedScan(ledgerDomain.ReasonInvalidToken), nil
	}

	active, err := s.tokens.IsActive(ctx, token.TokenID)
	if err != nil {
		return nil, err
	}
	if !active {
		return ledgerDomain.FailedScan(ledgerDomain.ReasonInvalidOrExpiredToken), nil
	}

	business, err := s.businesses.Get(ctx, businessID)
	if err != nil {
		if apperrors.Is(err, businessDomain.ErrBusinessNotFound) {
			return ledgerDomain.FailedScan(ledgerDomain.ReasonBusinessNotFound), nil
		}
		return nil, err
	}
	if !business.IsActive {
		return ledgerDomain.FailedScan(ledgerDomain.ReasonBusinessInactive), nil
	}

	businessName := strings.TrimSpace(businessDisplayName)
	if businessName == "" {
		businessName = business.DisplayName
	}

	record, isNewCard, err := s.stamp(ctx, token, business, businessName)
	if err != nil {
		return nil, err
	}

	if err := s.businesses.RecordScan(ctx, business.ID, 1, record.RewardEarned()); err != nil {
		s.logger.Warn("failed to record scan statistics",
			slog.String("business_id", business.ID),
			slog.String("customer_id", record.CustomerID),
			slog.Any("error", err),
		)
	}

	return ledgerDomain.SucceededScan(record, isNewCard), nil
}

// stamp creates the ledger record on the first visit or applies one more stamp with a
// version guarded update. A lost creation race is folded into the update path.
func (s *stampUseCase) stamp(
	ctx context.Context,
	token *tokenDomain.Token,
	business *businessDomain.Business,
	businessName string,
) (*ledgerDomain.LedgerRecord, bool, error) {
	for attempt := 1; attempt <= s.conflictRetries; attempt++ {
		now := s.now()

		record, err := s.ledgerRepo.Get(ctx, token.CustomerID, business.ID)
		if apperrors.Is(err, ledgerDomain.ErrLedgerRecordNotFound) {
			record = ledgerDomain.NewLedgerRecord(token, business, businessName, now)
			err = s.ledgerRepo.Create(ctx, record)
			if err == nil {
				return record, true, nil
			}
			if !apperrors.Is(err, ledgerDomain.ErrLedgerRecordAlreadyExists) {
				return nil, false, err
			}
			record, err = s.ledgerRepo.Get(ctx, token.CustomerID, business.ID)
		}
		if err != nil {
			return nil, false, err
		}

		inc := record.NextIncrement(now)
		err = s.ledgerRepo.ApplyStampIncrement(ctx, inc)
		if err == nil {
			record.Apply(inc)
			return record, false, nil
		}
		if !apperrors.Is(err, ledgerDomain.ErrLedgerConflict) {
			return nil, false, err
		}

		s.logger.Debug("ledger update conflict, retrying",
			slog.String("record_id", record.ID()),
			slog.Int("attempt", attempt),
		)
	}

	return nil, false, fmt.Errorf("%w: gave up after %d attempts", ledgerDomain.ErrLedgerConflict, s.conflictRetries)
}
