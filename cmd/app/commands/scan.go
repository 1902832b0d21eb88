package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
	ledgerUseCase "github.com/allisson/stampd/internal/ledger/usecase"
)

// RunScan applies a scan on behalf of a business, the way the scanning app would.
// When payload is empty it is read as one line from io.Reader, so a payload can be
// piped in. A rejected scan is reported, not returned as an error.
func RunScan(
	ctx context.Context,
	stampUseCase ledgerUseCase.StampUseCase,
	logger *slog.Logger,
	io IOTuple,
	payload string,
	businessID string,
	businessName string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if payload == "" {
		line, err := bufio.NewReader(io.Reader).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		payload = strings.TrimSpace(line)
	}
	if payload == "" {
		return fmt.Errorf("payload cannot be empty")
	}

	result, err := stampUseCase.ScanToken(ctx, payload, businessID, businessName)
	if err != nil {
		return fmt.Errorf("failed to scan token: %w", err)
	}

	logger.Info("scan processed",
		slog.String("business_id", businessID),
		slog.Bool("success", result.Success),
		slog.String("reason", string(result.Reason)),
	)

	if format == "json" {
		return outputJSON(scanResultJSON(result), io.Writer)
	}

	if !result.Success {
		_, _ = fmt.Fprintf(io.Writer, "Scan rejected (%s): %s\n", result.Reason, result.Message)
		return nil
	}
	_, _ = fmt.Fprintln(io.Writer, result.Message)
	_, _ = fmt.Fprintf(io.Writer, "Customer: %s\n", result.CustomerID)
	_, _ = fmt.Fprintf(io.Writer, "Stamps: %d/%d\n", result.CurrentStamps, result.StampsNeeded)
	return nil
}

func scanResultJSON(result *ledgerDomain.ScanResult) map[string]any {
	if !result.Success {
		return map[string]any{
			"success": false,
			"reason":  string(result.Reason),
			"message": result.Message,
		}
	}
	return map[string]any{
		"success":        true,
		"message":        result.Message,
		"customer_id":    result.CustomerID,
		"business_id":    result.BusinessID,
		"current_stamps": result.CurrentStamps,
		"stamps_needed":  result.StampsNeeded,
		"reward_earned":  result.RewardEarned,
		"is_new_card":    result.IsNewCard,
	}
}
