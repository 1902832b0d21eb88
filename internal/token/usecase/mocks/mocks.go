// Package mocks provides mock implementations of the token use case interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// MockTokenRepository is a mock implementation of TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

// NewMockTokenRepository creates a mock that asserts its expectations when the test ends.
func NewMockTokenRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenRepository {
	m := &MockTokenRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockTokenRepository) Create(ctx context.Context, record *tokenDomain.TokenRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockTokenRepository) Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.TokenRecord), args.Error(1)
}

// Deactivate mocks the Deactivate method.
func (m *MockTokenRepository) Deactivate(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

// MockTokenUseCase is a mock implementation of TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

// NewMockTokenUseCase creates a mock that asserts its expectations when the test ends.
func NewMockTokenUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenUseCase {
	m := &MockTokenUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Issue mocks the Issue method.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	input *tokenDomain.IssueTokenInput,
) (*tokenDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.IssueTokenOutput), args.Error(1)
}

// Register mocks the Register method.
func (m *MockTokenUseCase) Register(
	ctx context.Context,
	token *tokenDomain.Token,
) (*tokenDomain.TokenRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.TokenRecord), args.Error(1)
}

// Get mocks the Get method.
func (m *MockTokenUseCase) Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.TokenRecord), args.Error(1)
}

// IsActive mocks the IsActive method.
func (m *MockTokenUseCase) IsActive(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// Status mocks the Status method.
func (m *MockTokenUseCase) Status(ctx context.Context, tokenID string) (tokenDomain.TokenStatus, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(tokenDomain.TokenStatus), args.Error(1)
}

// Deactivate mocks the Deactivate method.
func (m *MockTokenUseCase) Deactivate(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockQRCodeRenderer is a mock implementation of QRCodeRenderer.
type MockQRCodeRenderer struct {
	mock.Mock
}

// Render mocks the Render method.
func (m *MockQRCodeRenderer) Render(payload string) ([]byte, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
