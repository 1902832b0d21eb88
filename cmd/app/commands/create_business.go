package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	businessUseCase "github.com/allisson/stampd/internal/business/usecase"
)

// RunCreateBusiness registers a business profile and prints its scan secret.
// The secret is only available at registration time, so the output is the one
// chance to store it. A zero StampsNeeded uses the configured default.
//
// Requirements: Database must be migrated and accessible.
func RunCreateBusiness(
	ctx context.Context,
	businessUseCase businessUseCase.BusinessUseCase,
	logger *slog.Logger,
	io IOTuple,
	input *businessDomain.RegisterBusinessInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("creating new business", slog.String("display_name", input.DisplayName))

	output, err := businessUseCase.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}

	if format == "json" {
		if err := outputJSON(map[string]any{
			"business_id":        output.Business.ID,
			"display_name":       output.Business.DisplayName,
			"stamps_needed":      output.Business.StampsNeeded,
			"reward_description": output.Business.RewardDescription,
			"secret":             output.PlainSecret,
		}, io.Writer); err != nil {
			return err
		}
	} else {
		outputBusinessCreatedText(output, io.Writer)
	}

	logger.Info("business created successfully",
		slog.String("business_id", output.Business.ID),
		slog.Int64("stamps_needed", output.Business.StampsNeeded),
	)

	return nil
}

func outputBusinessCreatedText(output *businessDomain.RegisterBusinessOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nBusiness created successfully!")
	_, _ = fmt.Fprintf(writer, "Business ID: %s\n", output.Business.ID)
	_, _ = fmt.Fprintf(writer, "Display Name: %s\n", output.Business.DisplayName)
	_, _ = fmt.Fprintf(writer, "Stamps Needed: %d\n", output.Business.StampsNeeded)
	if output.Business.RewardDescription != "" {
		_, _ = fmt.Fprintf(writer, "Reward: %s\n", output.Business.RewardDescription)
	}
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}
