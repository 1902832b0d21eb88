package usecase

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/allisson/stampd/internal/errors"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

// stampUseCaseWithRetry retries whole scans that failed with a transient store error.
type stampUseCaseWithRetry struct {
	next       StampUseCase
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
}

// NewStampUseCaseWithRetry wraps a StampUseCase so that scans failing with ErrTransient are
// retried up to maxRetries times, sleeping backoff multiplied by the attempt number in between.
func NewStampUseCaseWithRetry(
	useCase StampUseCase,
	maxRetries int,
	backoff time.Duration,
	logger *slog.Logger,
) StampUseCase {
	return &stampUseCaseWithRetry{
		next:       useCase,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
	}
}

// ScanToken delegates to the wrapped use case, retrying transient failures.
func (s *stampUseCaseWithRetry) ScanToken(
	ctx context.Context,
	rawToken, businessID, businessDisplayName string,
) (*ledgerDomain.ScanResult, error) {
	for attempt := 1; ; attempt++ {
		result, err := s.next.ScanToken(ctx, rawToken, businessID, businessDisplayName)
		if err == nil || !apperrors.Is(err, apperrors.ErrTransient) || attempt > s.maxRetries {
			return result, err
		}

		s.logger.Warn("transient scan failure, retrying",
			slog.String("business_id", businessID),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		timer := time.NewTimer(s.backoff * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
