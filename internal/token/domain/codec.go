package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Wire field names, as printed inside QR codes.
const (
	fieldType          = "type"
	fieldCustomerID    = "username"
	fieldCustomerEmail = "email"
	fieldTokenID       = "qr_id"
	fieldBusinessID    = "business_id"
)

// requiredFieldOrder fixes the order in which missing fields are reported.
var requiredFieldOrder = []string{fieldType, fieldCustomerID, fieldCustomerEmail, fieldTokenID, fieldBusinessID}

// wireToken is the JSON representation of a Token.
type wireToken struct {
	Type          string `json:"type"`
	CustomerID    string `json:"username"`
	CustomerEmail string `json:"email"`
	TokenID       string `json:"qr_id"`
	BusinessID    string `json:"business_id,omitempty"`
}

// Encode serializes the token to its JSON wire form.
func Encode(token *Token) (string, error) {
	data, err := json.Marshal(wireToken{
		Type:          string(token.Type),
		CustomerID:    token.CustomerID,
		CustomerEmail: token.CustomerEmail,
		TokenID:       token.TokenID,
		BusinessID:    token.BusinessID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return string(data), nil
}

// Decode parses the JSON wire form of a token.
//
// It returns ErrMalformedToken when text is not a JSON object or a field holds a
// non-string value, and a *MissingFieldError when a required field is absent or
// empty. business_id is required only for single-business tokens. Unknown token
// types decode successfully; Token.Validate rejects them.
func Decode(text string) (*Token, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedToken)
	}

	values := make(map[string]string, len(requiredFieldOrder))
	for _, name := range requiredFieldOrder {
		raw, ok := fields[name]
		if !ok || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %s must be a string", ErrMalformedToken, name)
		}
		values[name] = s
	}

	for _, name := range requiredFieldOrder {
		if name == fieldBusinessID && TokenType(values[fieldType]) != TokenTypeSingleBusiness {
			continue
		}
		if values[name] == "" {
			return nil, &MissingFieldError{Field: name}
		}
	}

	return &Token{
		Type:          TokenType(values[fieldType]),
		CustomerID:    values[fieldCustomerID],
		CustomerEmail: values[fieldCustomerEmail],
		TokenID:       values[fieldTokenID],
		BusinessID:    values[fieldBusinessID],
	}, nil
}
