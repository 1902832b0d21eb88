package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
	"github.com/allisson/stampd/internal/ledger/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordScan(ctx context.Context, outcome string, newCard, rewardEarned bool) {
	m.Called(ctx, outcome, newCard, rewardEarned)
}

func expectLedgerMetrics(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "ledger", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "ledger", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestStampUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		result       *ledgerDomain.ScanResult
		err          error
		status       string
		newCard      bool
		rewardEarned bool
	}{
		{name: "Success_Stamped", result: &ledgerDomain.ScanResult{Success: true}, status: "success"},
		{
			name:         "Success_NewCardWithReward",
			result:       &ledgerDomain.ScanResult{Success: true, IsNewCard: true, RewardEarned: true},
			status:       "success",
			newCard:      true,
			rewardEarned: true,
		},
		{
			name:   "Rejected_ReasonIsStatus",
			result: ledgerDomain.FailedScan(ledgerDomain.ReasonBusinessInactive),
			status: "business_inactive",
		},
		{name: "Error_Store", err: errors.New("boom"), status: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := mocks.NewMockStampUseCase(t)
			m := &mockBusinessMetrics{}

			next.On("ScanToken", ctx, "raw", "cafe", "").Return(tt.result, tt.err).Once()
			expectLedgerMetrics(m, "ledger_scan", tt.status)
			m.On("RecordScan", mock.Anything, tt.status, tt.newCard, tt.rewardEarned).Once()

			got, err := NewStampUseCaseWithMetrics(next, m).ScanToken(ctx, "raw", "cafe", "")
			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.result, got)
			m.AssertExpectations(t)
		})
	}
}

func TestDashboardUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Get", func(t *testing.T) {
		next := mocks.NewMockDashboardUseCase(t)
		m := &mockBusinessMetrics{}
		dashboard := &ledgerDomain.Dashboard{TotalCustomers: 2}

		next.On("Get", ctx, "cafe", 10).Return(dashboard, nil).Once()
		expectLedgerMetrics(m, "ledger_dashboard", "success")

		got, err := NewDashboardUseCaseWithMetrics(next, m).Get(ctx, "cafe", 10)
		assert.NoError(t, err)
		assert.Same(t, dashboard, got)
		m.AssertExpectations(t)
	})

	t.Run("Error_Get", func(t *testing.T) {
		next := mocks.NewMockDashboardUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Get", ctx, "cafe", 10).Return(nil, errors.New("boom")).Once()
		expectLedgerMetrics(m, "ledger_dashboard", "error")

		_, err := NewDashboardUseCaseWithMetrics(next, m).Get(ctx, "cafe", 10)
		assert.Error(t, err)
		m.AssertExpectations(t)
	})
}
