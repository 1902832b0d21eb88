package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/stampd/internal/errors"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
	tokenService "github.com/allisson/stampd/internal/token/service"
)

// maxIssueAttempts bounds how many fresh token ids Issue draws after id collisions.
const maxIssueAttempts = 3

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	tokenRepo  TokenRepository
	qrRenderer tokenService.QRCodeRenderer
	newTokenID func() string
}

// NewTokenUseCase creates a new TokenUseCase. Token ids are random (version 4) UUIDs.
func NewTokenUseCase(tokenRepo TokenRepository, qrRenderer tokenService.QRCodeRenderer) TokenUseCase {
	return &tokenUseCase{
		tokenRepo:  tokenRepo,
		qrRenderer: qrRenderer,
		newTokenID: uuid.NewString,
	}
}

// Issue builds a universal token, or a single-business token when input.BusinessID is set.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *tokenDomain.IssueTokenInput,
) (*tokenDomain.IssueTokenOutput, error) {
	tokenType := tokenDomain.TokenTypeUniversal
	if input.BusinessID != "" {
		tokenType = tokenDomain.TokenTypeSingleBusiness
	}

	var record *tokenDomain.TokenRecord
	var err error
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		record, err = t.Register(ctx, &tokenDomain.Token{
			Type:          tokenType,
			CustomerID:    input.CustomerID,
			CustomerEmail: input.CustomerEmail,
			TokenID:       t.newTokenID(),
			BusinessID:    input.BusinessID,
		})
		if !apperrors.Is(err, tokenDomain.ErrTokenAlreadyExists) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	payload, err := tokenDomain.Encode(record.Token())
	if err != nil {
		return nil, err
	}

	qrCode, err := t.qrRenderer.Render(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to render qr code")
	}

	return &tokenDomain.IssueTokenOutput{
		Record:  record,
		Payload: payload,
		QRCode:  qrCode,
	}, nil
}

// Register validates the token and stores it as an active record.
func (t *tokenUseCase) Register(
	ctx context.Context,
	token *tokenDomain.Token,
) (*tokenDomain.TokenRecord, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	record := tokenDomain.NewTokenRecord(token, time.Now().UTC())
	if err := t.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get retrieves the record for tokenID.
func (t *tokenUseCase) Get(ctx context.Context, tokenID string) (*tokenDomain.TokenRecord, error) {
	return t.tokenRepo.Get(ctx, tokenID)
}

// IsActive reports whether tokenID is registered and not revoked.
func (t *tokenUseCase) IsActive(ctx context.Context, tokenID string) (bool, error) {
	status, err := t.Status(ctx, tokenID)
	if err != nil {
		return false, err
	}
	return status == tokenDomain.TokenStatusActive, nil
}

// Status returns active, revoked or unknown for tokenID.
func (t *tokenUseCase) Status(ctx context.Context, tokenID string) (tokenDomain.TokenStatus, error) {
	record, err := t.tokenRepo.Get(ctx, tokenID)
	if err != nil {
		if apperrors.Is(err, tokenDomain.ErrTokenNotFound) {
			return tokenDomain.TokenStatusUnknown, nil
		}
		return "", err
	}
	return record.Status(), nil
}

// Deactivate revokes tokenID.
func (t *tokenUseCase) Deactivate(ctx context.Context, tokenID string) error {
	return t.tokenRepo.Deactivate(ctx, tokenID, time.Now().UTC())
}
