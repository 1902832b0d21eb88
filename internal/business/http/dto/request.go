// Package dto provides data transfer objects for business HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/stampd/internal/validation"
)

// UpdateBusinessRequest contains the profile fields to change. Absent fields are left untouched.
type UpdateBusinessRequest struct {
	DisplayName       *string `json:"display_name"`
	Category          *string `json:"category"`
	Location          *string `json:"location"`
	StampsNeeded      *int64  `json:"stamps_needed"`
	RewardDescription *string `json:"reward_description"`
	IsActive          *bool   `json:"is_active"`
}

// Validate checks if the update business request is valid.
func (r *UpdateBusinessRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DisplayName,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Category, validation.Length(0, 100)),
		validation.Field(&r.Location, validation.Length(0, 255)),
		validation.Field(&r.StampsNeeded, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&r.RewardDescription, validation.Length(0, 500)),
	)
}
