package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tokenDomain "github.com/allisson/stampd/internal/token/domain"
	tokenUseCase "github.com/allisson/stampd/internal/token/usecase"
)

// RunIssueToken issues a customer token and prints its payload. An empty
// BusinessID issues a universal token. When qrPath is set the rendered PNG
// is written there.
func RunIssueToken(
	ctx context.Context,
	tokenUseCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
	io IOTuple,
	input *tokenDomain.IssueTokenInput,
	qrPath string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("issuing token",
		slog.String("customer_id", input.CustomerID),
		slog.String("business_id", input.BusinessID),
	)

	output, err := tokenUseCase.Issue(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	if qrPath != "" {
		//nolint:gosec // the QR code image holds no secret beyond what the payload already prints
		if err := os.WriteFile(qrPath, output.QRCode, 0644); err != nil {
			return fmt.Errorf("failed to write qr code: %w", err)
		}
	}

	if format == "json" {
		result := map[string]any{
			"token_id": output.Record.TokenID,
			"type":     string(output.Record.Type),
			"payload":  output.Payload,
		}
		if qrPath != "" {
			result["qr_code_path"] = qrPath
		}
		if err := outputJSON(result, io.Writer); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nToken issued successfully!")
		_, _ = fmt.Fprintf(io.Writer, "Token ID: %s\n", output.Record.TokenID)
		_, _ = fmt.Fprintf(io.Writer, "Type: %s\n", output.Record.Type)
		_, _ = fmt.Fprintf(io.Writer, "Payload: %s\n", output.Payload)
		if qrPath != "" {
			_, _ = fmt.Fprintf(io.Writer, "QR Code: %s\n", qrPath)
		}
	}

	logger.Info("token issued successfully", slog.String("token_id", output.Record.TokenID))

	return nil
}
