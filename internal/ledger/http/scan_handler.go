// Package http provides HTTP handlers for scans, customer cards and business dashboards.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	businessHTTP "github.com/allisson/stampd/internal/business/http"
	"github.com/allisson/stampd/internal/httputil"
	"github.com/allisson/stampd/internal/ledger/http/dto"
	ledgerUseCase "github.com/allisson/stampd/internal/ledger/usecase"
	customValidation "github.com/allisson/stampd/internal/validation"
)

// ScanHandler handles scans submitted by businesses.
type ScanHandler struct {
	stampUseCase ledgerUseCase.StampUseCase
	logger       *slog.Logger
}

// NewScanHandler creates a new scan handler with required dependencies.
func NewScanHandler(stampUseCase ledgerUseCase.StampUseCase, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		stampUseCase: stampUseCase,
		logger:       logger,
	}
}

// ScanHandler applies a stamp for the scanned token.
// POST /v1/businesses/:business_id/scans - Requires business authentication.
// Returns 200 OK for both accepted and rejected scans; rejected scans carry success=false and a reason.
func (h *ScanHandler) ScanHandler(c *gin.Context) {
	var req dto.ScanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.stampUseCase.ScanToken(
		c.Request.Context(),
		req.Payload,
		c.Param(businessHTTP.BusinessIDParam),
		req.BusinessName,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapScanResultToResponse(result))
}
