// Package mocks provides mock implementations of the ledger use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

// NewMockLedgerRepository creates a mock that asserts its expectations when the test ends.
func NewMockLedgerRepository(t testingT) *MockLedgerRepository {
	m := &MockLedgerRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get mocks the Get method.
func (m *MockLedgerRepository) Get(
	ctx context.Context,
	customerID, businessID string,
) (*ledgerDomain.LedgerRecord, error) {
	args := m.Called(ctx, customerID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.LedgerRecord), args.Error(1)
}

// Create mocks the Create method.
func (m *MockLedgerRepository) Create(ctx context.Context, record *ledgerDomain.LedgerRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// ApplyStampIncrement mocks the ApplyStampIncrement method.
func (m *MockLedgerRepository) ApplyStampIncrement(ctx context.Context, inc *ledgerDomain.StampIncrement) error {
	args := m.Called(ctx, inc)
	return args.Error(0)
}

// ListByCustomer mocks the ListByCustomer method.
func (m *MockLedgerRepository) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]*ledgerDomain.LedgerRecord, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.LedgerRecord), args.Error(1)
}

// ListByBusiness mocks the ListByBusiness method.
func (m *MockLedgerRepository) ListByBusiness(
	ctx context.Context,
	businessID string,
	limit int,
) ([]*ledgerDomain.LedgerRecord, error) {
	args := m.Called(ctx, businessID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.LedgerRecord), args.Error(1)
}

// CountByBusiness mocks the CountByBusiness method.
func (m *MockLedgerRepository) CountByBusiness(ctx context.Context, businessID string) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenRegistry is a mock implementation of TokenRegistry.
type MockTokenRegistry struct {
	mock.Mock
}

// NewMockTokenRegistry creates a mock that asserts its expectations when the test ends.
func NewMockTokenRegistry(t testingT) *MockTokenRegistry {
	m := &MockTokenRegistry{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// IsActive mocks the IsActive method.
func (m *MockTokenRegistry) IsActive(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockBusinessDirectory is a mock implementation of BusinessDirectory and BusinessReader.
type MockBusinessDirectory struct {
	mock.Mock
}

// NewMockBusinessDirectory creates a mock that asserts its expectations when the test ends.
func NewMockBusinessDirectory(t testingT) *MockBusinessDirectory {
	m := &MockBusinessDirectory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get mocks the Get method.
func (m *MockBusinessDirectory) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businessDomain.Business), args.Error(1)
}

// RecordScan mocks the RecordScan method.
func (m *MockBusinessDirectory) RecordScan(
	ctx context.Context,
	businessID string,
	stampsGiven int64,
	rewardEarned bool,
) error {
	args := m.Called(ctx, businessID, stampsGiven, rewardEarned)
	return args.Error(0)
}

// DailyStats mocks the DailyStats method.
func (m *MockBusinessDirectory) DailyStats(
	ctx context.Context,
	businessID string,
	days int,
) ([]*businessDomain.DailyStats, error) {
	args := m.Called(ctx, businessID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*businessDomain.DailyStats), args.Error(1)
}

// MockStampUseCase is a mock implementation of StampUseCase.
type MockStampUseCase struct {
	mock.Mock
}

// NewMockStampUseCase creates a mock that asserts its expectations when the test ends.
func NewMockStampUseCase(t testingT) *MockStampUseCase {
	m := &MockStampUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ScanToken mocks the ScanToken method.
func (m *MockStampUseCase) ScanToken(
	ctx context.Context,
	rawToken, businessID, businessDisplayName string,
) (*ledgerDomain.ScanResult, error) {
	args := m.Called(ctx, rawToken, businessID, businessDisplayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.ScanResult), args.Error(1)
}

// MockCardUseCase is a mock implementation of CardUseCase.
type MockCardUseCase struct {
	mock.Mock
}

// NewMockCardUseCase creates a mock that asserts its expectations when the test ends.
func NewMockCardUseCase(t testingT) *MockCardUseCase {
	m := &MockCardUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ListByCustomer mocks the ListByCustomer method.
func (m *MockCardUseCase) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]*ledgerDomain.LedgerRecord, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.LedgerRecord), args.Error(1)
}

// Get mocks the Get method.
func (m *MockCardUseCase) Get(
	ctx context.Context,
	customerID, businessID string,
) (*ledgerDomain.LedgerRecord, error) {
	args := m.Called(ctx, customerID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.LedgerRecord), args.Error(1)
}

// MockDashboardUseCase is a mock implementation of DashboardUseCase.
type MockDashboardUseCase struct {
	mock.Mock
}

// NewMockDashboardUseCase creates a mock that asserts its expectations when the test ends.
func NewMockDashboardUseCase(t testingT) *MockDashboardUseCase {
	m := &MockDashboardUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get mocks the Get method.
func (m *MockDashboardUseCase) Get(
	ctx context.Context,
	businessID string,
	recentLimit int,
) (*ledgerDomain.Dashboard, error) {
	args := m.Called(ctx, businessID, recentLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.Dashboard), args.Error(1)
}
