package commands

import (
	"context"
	"fmt"
	"log/slog"

	tokenUseCase "github.com/allisson/stampd/internal/token/usecase"
)

// RunDeactivateToken revokes a token. Revoking an unknown or already revoked
// token succeeds, so the command can be re-run safely.
func RunDeactivateToken(
	ctx context.Context,
	tokenUseCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
	io IOTuple,
	tokenID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if tokenID == "" {
		return fmt.Errorf("token id is required")
	}

	logger.Info("deactivating token", slog.String("token_id", tokenID))

	if err := tokenUseCase.Deactivate(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to deactivate token: %w", err)
	}

	if format == "json" {
		if err := outputJSON(map[string]any{"token_id": tokenID, "status": "revoked"}, io.Writer); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(io.Writer, "Token %s deactivated\n", tokenID)
	}

	return nil
}
