package dto

import (
	"encoding/base64"
	"time"

	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

// IssueTokenResponse contains the issued token, its QR payload and the QR image as base64 PNG.
type IssueTokenResponse struct {
	TokenID  string    `json:"token_id"`
	Type     string    `json:"type"`
	Payload  string    `json:"payload"`
	QRCode   string    `json:"qr_code"`
	IssuedAt time.Time `json:"issued_at"`
}

// MapIssueOutputToResponse converts an issue output to an API response.
func MapIssueOutputToResponse(output *tokenDomain.IssueTokenOutput) IssueTokenResponse {
	return IssueTokenResponse{
		TokenID:  output.Record.TokenID,
		Type:     string(output.Record.Type),
		Payload:  output.Payload,
		QRCode:   base64.StdEncoding.EncodeToString(output.QRCode),
		IssuedAt: output.Record.IssuedAt,
	}
}

// TokenResponse represents a token record in API responses.
type TokenResponse struct {
	TokenID       string     `json:"token_id"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	CustomerID    string     `json:"customer_id"`
	CustomerEmail string     `json:"customer_email"`
	BusinessID    string     `json:"business_id,omitempty"`
	IssuedAt      time.Time  `json:"issued_at"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
}

// MapTokenRecordToResponse converts a token record to an API response.
func MapTokenRecordToResponse(record *tokenDomain.TokenRecord) TokenResponse {
	return TokenResponse{
		TokenID:       record.TokenID,
		Type:          string(record.Type),
		Status:        string(record.Status()),
		CustomerID:    record.CustomerID,
		CustomerEmail: record.CustomerEmail,
		BusinessID:    record.BusinessID,
		IssuedAt:      record.IssuedAt,
		RevokedAt:     record.RevokedAt,
	}
}
