// Package dto provides data transfer objects for token HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/stampd/internal/validation"
)

// IssueTokenRequest contains the parameters for issuing a customer token.
// An empty BusinessID issues a universal token.
type IssueTokenRequest struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	BusinessID    string `json:"business_id"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CustomerID,
			validation.Required,
			customValidation.Identifier,
			validation.Length(1, 255),
		),
		validation.Field(&r.CustomerEmail,
			validation.Required,
			customValidation.Email,
			validation.Length(1, 255),
		),
		validation.Field(&r.BusinessID,
			customValidation.Identifier,
			validation.Length(0, 255),
		),
	)
}
