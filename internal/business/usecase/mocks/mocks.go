// Package mocks provides mock implementations of the business use case interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockBusinessRepository is a mock implementation of BusinessRepository.
type MockBusinessRepository struct {
	mock.Mock
}

// NewMockBusinessRepository creates a mock that asserts its expectations when the test ends.
func NewMockBusinessRepository(t testingT) *MockBusinessRepository {
	m := &MockBusinessRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockBusinessRepository) Create(ctx context.Context, business *businessDomain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockBusinessRepository) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businessDomain.Business), args.Error(1)
}

// Update mocks the Update method.
func (m *MockBusinessRepository) Update(ctx context.Context, business *businessDomain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

// IncrementStats mocks the IncrementStats method.
func (m *MockBusinessRepository) IncrementStats(
	ctx context.Context,
	businessID string,
	stampsGiven, rewards int64,
) error {
	args := m.Called(ctx, businessID, stampsGiven, rewards)
	return args.Error(0)
}

// IncrementDailyStats mocks the IncrementDailyStats method.
func (m *MockBusinessRepository) IncrementDailyStats(
	ctx context.Context,
	businessID string,
	day time.Time,
	stampsGiven, rewards int64,
) error {
	args := m.Called(ctx, businessID, day, stampsGiven, rewards)
	return args.Error(0)
}

// ListDailyStats mocks the ListDailyStats method.
func (m *MockBusinessRepository) ListDailyStats(
	ctx context.Context,
	businessID string,
	since time.Time,
) ([]*businessDomain.DailyStats, error) {
	args := m.Called(ctx, businessID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*businessDomain.DailyStats), args.Error(1)
}

// MockBusinessUseCase is a mock implementation of BusinessUseCase.
type MockBusinessUseCase struct {
	mock.Mock
}

// NewMockBusinessUseCase creates a mock that asserts its expectations when the test ends.
func NewMockBusinessUseCase(t testingT) *MockBusinessUseCase {
	m := &MockBusinessUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Register mocks the Register method.
func (m *MockBusinessUseCase) Register(
	ctx context.Context,
	input *businessDomain.RegisterBusinessInput,
) (*businessDomain.RegisterBusinessOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businessDomain.RegisterBusinessOutput), args.Error(1)
}

// Update mocks the Update method.
func (m *MockBusinessUseCase) Update(
	ctx context.Context,
	input *businessDomain.UpdateBusinessInput,
) (*businessDomain.Business, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businessDomain.Business), args.Error(1)
}

// Get mocks the Get method.
func (m *MockBusinessUseCase) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businessDomain.Business), args.Error(1)
}

// IsOperational mocks the IsOperational method.
func (m *MockBusinessUseCase) IsOperational(ctx context.Context, businessID string) (bool, error) {
	args := m.Called(ctx, businessID)
	return args.Bool(0), args.Error(1)
}

// RecordScan mocks the RecordScan method.
func (m *MockBusinessUseCase) RecordScan(
	ctx context.Context,
	businessID string,
	stampsGiven int64,
	rewardEarned bool,
) error {
	args := m.Called(ctx, businessID, stampsGiven, rewardEarned)
	return args.Error(0)
}

// Authenticate mocks the Authenticate method.
func (m *MockBusinessUseCase) Authenticate(
	ctx context.Context,
	businessID, secret string,
) (*businessDomain.Business, error) {
	args := m.Called(ctx, businessID, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businessDomain.Business), args.Error(1)
}

// DailyStats mocks the DailyStats method.
func (m *MockBusinessUseCase) DailyStats(
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

// MockSecretService is a mock implementation of SecretService.
type MockSecretService struct {
	mock.Mock
}

// GenerateSecret mocks the GenerateSecret method.
func (m *MockSecretService) GenerateSecret() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// HashSecret mocks the HashSecret method.
func (m *MockSecretService) HashSecret(plainSecret string) (string, error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

// CompareSecret mocks the CompareSecret method.
func (m *MockSecretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	args := m.Called(plainSecret, hashedSecret)
	return args.Bool(0)
}

// MockTxManager runs the transaction body inline so use cases can be tested without a database.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method and invokes fn unless an error is configured.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
