// Package domain defines the token model, its wire codec and registry records.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// TokenType distinguishes tokens bound to one business from tokens accepted anywhere.
type TokenType string

const (
	// TokenTypeSingleBusiness is accepted only by the business named in the token.
	TokenTypeSingleBusiness TokenType = "stamp_card"
	// TokenTypeUniversal is accepted by every business.
	TokenTypeUniversal TokenType = "universal_stamp_card"
)

// IsKnown reports whether the type is one this version understands.
func (t TokenType) IsKnown() bool {
	return t == TokenTypeSingleBusiness || t == TokenTypeUniversal
}

// TokenStatus is the registry's view of a token id.
type TokenStatus string

const (
	TokenStatusActive  TokenStatus = "active"
	TokenStatusRevoked TokenStatus = "revoked"
	TokenStatusUnknown TokenStatus = "unknown"
)

// Token is the identity capsule a customer presents to be scanned.
// BusinessID is empty for universal tokens.
type Token struct {
	Type          TokenType
	CustomerID    string
	CustomerEmail string
	TokenID       string
	BusinessID    string
}

// Validate performs the structural check applied to every decoded token before
// it is trusted: the type must be known and every field it requires must be set.
func (t *Token) Validate() error {
	if !t.Type.IsKnown() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidToken, t.Type)
	}

	required := map[string]string{
		fieldCustomerID:    t.CustomerID,
		fieldCustomerEmail: t.CustomerEmail,
		fieldTokenID:       t.TokenID,
	}
	if t.Type == TokenTypeSingleBusiness {
		required[fieldBusinessID] = t.BusinessID
	}

	for _, name := range requiredFieldOrder {
		value, ok := required[name]
		if ok && strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidToken, name)
		}
	}

	return nil
}

// AcceptedAt reports whether the token may be scanned at businessID.
func (t *Token) AcceptedAt(businessID string) bool {
	if t.Type == TokenTypeUniversal {
		return true
	}
	return t.BusinessID == businessID
}

// TokenRecord is the registry entry kept for each issued token id.
type TokenRecord struct {
	TokenID       string
	Type          TokenType
	CustomerID    string
	CustomerEmail string
	BusinessID    string
	IsActive      bool
	IssuedAt      time.Time
	RevokedAt     *time.Time
}

// NewTokenRecord builds an active record for a freshly issued token.
func NewTokenRecord(token *Token, issuedAt time.Time) *TokenRecord {
	return &TokenRecord{
		TokenID:       token.TokenID,
		Type:          token.Type,
		CustomerID:    token.CustomerID,
		CustomerEmail: token.CustomerEmail,
		BusinessID:    token.BusinessID,
		IsActive:      true,
		IssuedAt:      issuedAt,
	}
}

// Status derives the three-way status of the record.
func (r *TokenRecord) Status() TokenStatus {
	if r == nil {
		return TokenStatusUnknown
	}
	if r.IsActive {
		return TokenStatusActive
	}
	return TokenStatusRevoked
}

// Token rebuilds the token the record was issued for.
func (r *TokenRecord) Token() *Token {
	return &Token{
		Type:          r.Type,
		CustomerID:    r.CustomerID,
		CustomerEmail: r.CustomerEmail,
		TokenID:       r.TokenID,
		BusinessID:    r.BusinessID,
	}
}

// IssueTokenInput contains the parameters for issuing a new token.
// An empty BusinessID issues a universal token.
type IssueTokenInput struct {
	CustomerID    string
	CustomerEmail string
	BusinessID    string
}

// IssueTokenOutput contains the issued record, its encoded payload and the rendered QR image.
type IssueTokenOutput struct {
	Record  *TokenRecord
	Payload string
	QRCode  []byte
}
