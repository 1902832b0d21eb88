package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	"github.com/allisson/stampd/internal/business/usecase/mocks"
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

func expectBusinessMetrics(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "business", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "business", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestBusinessUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Register", func(t *testing.T) {
		next := mocks.NewMockBusinessUseCase(t)
		m := &mockBusinessMetrics{}
		input := &businessDomain.RegisterBusinessInput{DisplayName: "Cafe"}
		output := &businessDomain.RegisterBusinessOutput{PlainSecret: "scn_x"}

		next.On("Register", ctx, input).Return(output, nil).Once()
		expectBusinessMetrics(m, "business_register", "success")

		got, err := NewBusinessUseCaseWithMetrics(next, m).Register(ctx, input)
		require.NoError(t, err)
		assert.Same(t, output, got)
		m.AssertExpectations(t)
	})

	t.Run("Error_Authenticate", func(t *testing.T) {
		next := mocks.NewMockBusinessUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("Authenticate", ctx, "cafe", "bad").
			Return(nil, businessDomain.ErrInvalidBusinessCredentials).Once()
		expectBusinessMetrics(m, "business_authenticate", "error")

		_, err := NewBusinessUseCaseWithMetrics(next, m).Authenticate(ctx, "cafe", "bad")
		assert.ErrorIs(t, err, businessDomain.ErrInvalidBusinessCredentials)
		m.AssertExpectations(t)
	})

	t.Run("Success_RecordScan", func(t *testing.T) {
		next := mocks.NewMockBusinessUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("RecordScan", ctx, "cafe", int64(1), true).Return(nil).Once()
		expectBusinessMetrics(m, "business_record_scan", "success")

		assert.NoError(t, NewBusinessUseCaseWithMetrics(next, m).RecordScan(ctx, "cafe", 1, true))
		m.AssertExpectations(t)
	})

	t.Run("Success_IsOperational", func(t *testing.T) {
		next := mocks.NewMockBusinessUseCase(t)
		m := &mockBusinessMetrics{}

		next.On("IsOperational", ctx, "cafe").Return(true, nil).Once()
		expectBusinessMetrics(m, "business_is_operational", "success")

		ok, err := NewBusinessUseCaseWithMetrics(next, m).IsOperational(ctx, "cafe")
		require.NoError(t, err)
		assert.True(t, ok)
		m.AssertExpectations(t)
	})

	t.Run("Success_DailyStats", func(t *testing.T) {
		next := mocks.NewMockBusinessUseCase(t)
		m := &mockBusinessMetrics{}
		stats := []*businessDomain.DailyStats{}

		next.On("DailyStats", ctx, "cafe", 7).Return(stats, nil).Once()
		expectBusinessMetrics(m, "business_daily_stats", "success")

		got, err := NewBusinessUseCaseWithMetrics(next, m).DailyStats(ctx, "cafe", 7)
		require.NoError(t, err)
		assert.Equal(t, stats, got)
		m.AssertExpectations(t)
	})
}
