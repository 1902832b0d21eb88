package usecase

import (
	"context"
	"time"

	"github.com/allisson/stampd/internal/metrics"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", operation, status)
	t.metrics.RecordDuration(ctx, "token", operation, time.Since(start), status)
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *tokenDomain.IssueTokenInput,
) (*tokenDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, input)
	t.record(ctx, "token_issue", start, err)
	return output, err
}

// Register records metrics for token registration.
func (t *tokenUseCaseWithMetrics) Register(
	ctx context.Context,
	token *tokenDomain.Token,
) (*tokenDomain.TokenRecord, error) {
	start := time.Now()
	record, err := t.next.Register(ctx, token)
	t.record(ctx, "token_register", start, err)
	return record, err
}

// Get records metrics for token lookups.
func (t *tokenUseCaseWithMetrics) Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error) {
	start := time.Now()
	record, err := t.next.Get(ctx, tokenID)
	t.record(ctx, "token_get", start, err)
	return record, err
}

// IsActive records metrics for token activity checks.
func (t *tokenUseCaseWithMetrics) IsActive(ctx context.Context, tokenID string) (bool, error) {
	start := time.Now()
	active, err := t.next.IsActive(ctx, tokenID)
	t.record(ctx, "token_is_active", start, err)
	return active, err
}

// Status records metrics for token status checks.
func (t *tokenUseCaseWithMetrics) Status(ctx context.Context, tokenID string) (tokenDomain.TokenStatus, error) {
	start := time.Now()
	status, err := t.next.Status(ctx, tokenID)
	t.record(ctx, "token_status", start, err)
	return status, err
}

// Deactivate records metrics for token revocation.
func (t *tokenUseCaseWithMetrics) Deactivate(ctx context.Context, tokenID string) error {
	start := time.Now()
	err := t.next.Deactivate(ctx, tokenID)
	t.record(ctx, "token_deactivate", start, err)
	return err
}
