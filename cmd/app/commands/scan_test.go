package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/stampd/internal/ledger/domain"
	ledgerMocks "github.com/allisson/stampd/internal/ledger/usecase/mocks"
)

func TestRunScan(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	accepted := &ledgerDomain.ScanResult{
		Success:       true,
		CustomerID:    "customer-1",
		BusinessID:    "corner-cafe",
		CurrentStamps: 3,
		StampsNeeded:  8,
		Message:       "Stamp added: 3/8 stamps",
	}

	t.Run("payload-flag-text", func(t *testing.T) {
		mockUseCase := ledgerMocks.NewMockStampUseCase(t)
		mockUseCase.On("ScanToken", ctx, "payload-value", "corner-cafe", "").Return(accepted, nil).Once()

		var out bytes.Buffer
		err := RunScan(ctx, mockUseCase, logger, IOTuple{Writer: &out}, "payload-value", "corner-cafe", "", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Stamp added: 3/8 stamps")
		require.Contains(t, out.String(), "Stamps: 3/8")
	})

	t.Run("payload-from-reader-json", func(t *testing.T) {
		mockUseCase := ledgerMocks.NewMockStampUseCase(t)
		mockUseCase.On("ScanToken", ctx, "piped-payload", "corner-cafe", "Cafe").Return(accepted, nil).Once()

		var out bytes.Buffer
		tuple := IOTuple{Reader: strings.NewReader("  piped-payload \n"), Writer: &out}
		err := RunScan(ctx, mockUseCase, logger, tuple, "", "corner-cafe", "Cafe", "json")
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Equal(t, true, result["success"])
		require.Equal(t, float64(3), result["current_stamps"])
	})

	t.Run("rejected-scan-is-not-an-error", func(t *testing.T) {
		mockUseCase := ledgerMocks.NewMockStampUseCase(t)
		rejected := ledgerDomain.FailedScan(ledgerDomain.ReasonBusinessInactive)
		mockUseCase.On("ScanToken", ctx, "payload-value", "corner-cafe", "").Return(rejected, nil).Once()

		var out bytes.Buffer
		err := RunScan(ctx, mockUseCase, logger, IOTuple{Writer: &out}, "payload-value", "corner-cafe", "", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Scan rejected (business_inactive)")
	})

	t.Run("empty-payload", func(t *testing.T) {
		mockUseCase := ledgerMocks.NewMockStampUseCase(t)

		tuple := IOTuple{Reader: strings.NewReader("\n"), Writer: &bytes.Buffer{}}
		err := RunScan(ctx, mockUseCase, logger, tuple, "", "corner-cafe", "", "text")

		require.Error(t, err)
	})

	t.Run("store-failure", func(t *testing.T) {
		mockUseCase := ledgerMocks.NewMockStampUseCase(t)
		mockUseCase.On("ScanToken", ctx, "payload-value", "corner-cafe", "").
			Return(nil, errors.New("connection reset")).Once()

		err := RunScan(ctx, mockUseCase, logger, IOTuple{Writer: io.Discard}, "payload-value", "corner-cafe", "", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to scan token")
	})
}
