// Package http provides HTTP handlers for customer token issuance and revocation.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/stampd/internal/httputil"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
	"github.com/allisson/stampd/internal/token/http/dto"
	tokenUseCase "github.com/allisson/stampd/internal/token/usecase"
	customValidation "github.com/allisson/stampd/internal/validation"
)

// TokenHandler handles HTTP requests for the token registry.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueHandler issues a new customer token and returns its QR code.
// POST /v1/tokens - Returns 201 Created.
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &tokenDomain.IssueTokenInput{
		CustomerID:    req.CustomerID,
		CustomerEmail: req.CustomerEmail,
		BusinessID:    req.BusinessID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssueOutputToResponse(output))
}

// GetHandler returns a token record with its status.
// GET /v1/tokens/:token_id - Returns 200 OK, 404 for unknown token ids.
func (h *TokenHandler) GetHandler(c *gin.Context) {
	record, err := h.tokenUseCase.Get(c.Request.Context(), c.Param("token_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenRecordToResponse(record))
}

// DeactivateHandler revokes a token. Revoking an unknown or revoked token succeeds.
// DELETE /v1/tokens/:token_id - Returns 204 No Content.
func (h *TokenHandler) DeactivateHandler(c *gin.Context) {
	if err := h.tokenUseCase.Deactivate(c.Request.Context(), c.Param("token_id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
