// Package dto provides data transfer objects for scan, card and dashboard HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/stampd/internal/validation"
)

// ScanRequest carries the decoded QR payload read by the business scanner.
type ScanRequest struct {
	Payload      string `json:"payload"`
	BusinessName string `json:"business_name"`
}

// Validate checks if the scan request is valid. The payload content itself is checked by the stamp engine.
func (r *ScanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 4096),
		),
		validation.Field(&r.BusinessName,
			validation.Length(0, 255),
		),
	)
}
