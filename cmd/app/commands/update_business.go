package commands

import (
	"context"
	"fmt"
	"log/slog"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	businessUseCase "github.com/allisson/stampd/internal/business/usecase"
)

// RunUpdateBusiness edits the profile fields set in input. Nil fields keep their
// stored value, and existing cards keep the threshold they were created with.
//
// Requirements: Database must be migrated and the business must exist.
func RunUpdateBusiness(
	ctx context.Context,
	businessUseCase businessUseCase.BusinessUseCase,
	logger *slog.Logger,
	io IOTuple,
	input *businessDomain.UpdateBusinessInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("updating business", slog.String("business_id", input.ID))

	business, err := businessUseCase.Update(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	if format == "json" {
		if err := outputJSON(map[string]any{
			"business_id":        business.ID,
			"display_name":       business.DisplayName,
			"category":           business.Category,
			"location":           business.Location,
			"is_active":          business.IsActive,
			"stamps_needed":      business.StampsNeeded,
			"reward_description": business.RewardDescription,
		}, io.Writer); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nBusiness updated successfully!")
		_, _ = fmt.Fprintf(io.Writer, "Business ID: %s\n", business.ID)
		_, _ = fmt.Fprintf(io.Writer, "Display Name: %s\n", business.DisplayName)
		_, _ = fmt.Fprintf(io.Writer, "Active: %t\n", business.IsActive)
		_, _ = fmt.Fprintf(io.Writer, "Stamps Needed: %d\n", business.StampsNeeded)
	}

	logger.Info("business updated successfully",
		slog.String("business_id", business.ID),
		slog.Bool("is_active", business.IsActive),
	)

	return nil
}
