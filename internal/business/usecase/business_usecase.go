package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	businessService "github.com/allisson/stampd/internal/business/service"
	"github.com/allisson/stampd/internal/database"
	apperrors "github.com/allisson/stampd/internal/errors"
	customValidation "github.com/allisson/stampd/internal/validation"
)

// businessUseCase implements BusinessUseCase.
type businessUseCase struct {
	txManager           database.TxManager
	businessRepo        BusinessRepository
	secretService       businessService.SecretService
	defaultStampsNeeded int64
	now                 func() time.Time
}

// Register validates the input, applies defaults, generates a scan secret and stores the profile.
func (b *businessUseCase) Register(
	ctx context.Context,
	input *businessDomain.RegisterBusinessInput,
) (*businessDomain.RegisterBusinessOutput, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	plainSecret, hashedSecret, err := b.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	stampsNeeded := input.StampsNeeded
	if stampsNeeded == 0 {
		stampsNeeded = b.defaultStampsNeeded
	}

	now := b.now()
	business := &businessDomain.Business{
		ID:                id,
		DisplayName:       strings.TrimSpace(input.DisplayName),
		Category:          input.Category,
		Location:          input.Location,
		IsActive:          true,
		StampsNeeded:      stampsNeeded,
		RewardDescription: input.RewardDescription,
		SecretHash:        hashedSecret,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := b.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	return &businessDomain.RegisterBusinessOutput{
		Business:    business,
		PlainSecret: plainSecret,
	}, nil
}

// Update applies the non-nil fields of input to the stored profile.
func (b *businessUseCase) Update(
	ctx context.Context,
	input *businessDomain.UpdateBusinessInput,
) (*businessDomain.Business, error) {
	business, err := b.businessRepo.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		business.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Category != nil {
		business.Category = *input.Category
	}
	if input.Location != nil {
		business.Location = *input.Location
	}
	if input.StampsNeeded != nil {
		business.StampsNeeded = *input.StampsNeeded
	}
	if input.RewardDescription != nil {
		business.RewardDescription = *input.RewardDescription
	}
	if input.IsActive != nil {
		business.IsActive = *input.IsActive
	}

	if err := validateProfile(business); err != nil {
		return nil, err
	}

	business.UpdatedAt = b.now()
	if err := b.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Get retrieves a business profile. Returns ErrBusinessNotFound if absent.
func (b *businessUseCase) Get(ctx context.Context, businessID string) (*businessDomain.Business, error) {
	return b.businessRepo.Get(ctx, businessID)
}

// IsOperational returns false for unknown and inactive businesses.
func (b *businessUseCase) IsOperational(ctx context.Context, businessID string) (bool, error) {
	business, err := b.businessRepo.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessDomain.ErrBusinessNotFound) {
			return false, nil
		}
		return false, err
	}
	return business.IsActive, nil
}

// RecordScan increments the lifetime and daily counters atomically.
func (b *businessUseCase) RecordScan(
	ctx context.Context,
	businessID string,
	stampsGiven int64,
	rewardEarned bool,
) error {
	var rewards int64
	if rewardEarned {
		rewards = 1
	}
	day := businessDomain.DayOf(b.now())

	return b.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := b.businessRepo.IncrementStats(ctx, businessID, stampsGiven, rewards); err != nil {
			return err
		}
		return b.businessRepo.IncrementDailyStats(ctx, businessID, day, stampsGiven, rewards)
	})
}

// Authenticate verifies the scan secret of a business.
// Unknown ids and wrong secrets return the same ErrInvalidBusinessCredentials.
func (b *businessUseCase) Authenticate(
	ctx context.Context,
	businessID, secret string,
) (*businessDomain.Business, error) {
	business, err := b.businessRepo.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessDomain.ErrBusinessNotFound) {
			return nil, businessDomain.ErrInvalidBusinessCredentials
		}
		return nil, err
	}

	if !b.secretService.CompareSecret(secret, business.SecretHash) {
		return nil, businessDomain.ErrInvalidBusinessCredentials
	}
	return business, nil
}

// DailyStats returns the daily counters for the last days UTC days.
func (b *businessUseCase) DailyStats(
	ctx context.Context,
	businessID string,
	days int,
) ([]*businessDomain.DailyStats, error) {
	if days < 1 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be positive")
	}

	since := businessDomain.DayOf(b.now()).AddDate(0, 0, -(days - 1))
	return b.businessRepo.ListDailyStats(ctx, businessID, since)
}

func validateRegisterInput(input *businessDomain.RegisterBusinessInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.ID,
			customValidation.Identifier,
			validation.Length(0, 255),
		),
		validation.Field(&input.DisplayName,
			validation.Required.Error("display name is required"),
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&input.Category, validation.Length(0, 100)),
		validation.Field(&input.Location, validation.Length(0, 255)),
		validation.Field(&input.StampsNeeded, validation.Min(int64(0))),
		validation.Field(&input.RewardDescription, validation.Length(0, 500)),
	)
	return customValidation.WrapValidationError(err)
}

func validateProfile(business *businessDomain.Business) error {
	err := validation.ValidateStruct(business,
		validation.Field(&business.DisplayName,
			validation.Required.Error("display name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&business.Category, validation.Length(0, 100)),
		validation.Field(&business.Location, validation.Length(0, 255)),
		validation.Field(&business.StampsNeeded,
			validation.Required.Error("stamps needed must be positive"),
			validation.Min(int64(1)),
		),
		validation.Field(&business.RewardDescription, validation.Length(0, 500)),
	)
	return customValidation.WrapValidationError(err)
}

// NewBusinessUseCase creates a new BusinessUseCase.
// A non-positive defaultStampsNeeded falls back to businessDomain.DefaultStampsNeeded.
func NewBusinessUseCase(
	txManager database.TxManager,
	businessRepo BusinessRepository,
	secretService businessService.SecretService,
	defaultStampsNeeded int64,
) BusinessUseCase {
	if defaultStampsNeeded <= 0 {
		defaultStampsNeeded = businessDomain.DefaultStampsNeeded
	}
	return &businessUseCase{
		txManager:           txManager,
		businessRepo:        businessRepo,
		secretService:       secretService,
		defaultStampsNeeded: defaultStampsNeeded,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}
