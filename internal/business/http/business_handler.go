package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	"github.com/allisson/stampd/internal/business/http/dto"
	businessUseCase "github.com/allisson/stampd/internal/business/usecase"
	"github.com/allisson/stampd/internal/httputil"
	customValidation "github.com/allisson/stampd/internal/validation"
)

// BusinessHandler handles HTTP requests for business profiles.
type BusinessHandler struct {
	businessUseCase businessUseCase.BusinessUseCase
	logger          *slog.Logger
}

// NewBusinessHandler creates a new business handler with required dependencies.
func NewBusinessHandler(businessUseCase businessUseCase.BusinessUseCase, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{
		businessUseCase: businessUseCase,
		logger:          logger,
	}
}

// GetHandler returns a business profile.
// GET /v1/businesses/:business_id - Returns 200 OK.
func (h *BusinessHandler) GetHandler(c *gin.Context) {
	business, err := h.businessUseCase.Get(c.Request.Context(), c.Param(BusinessIDParam))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBusinessToResponse(business))
}

// UpdateHandler edits the profile of the authenticated business.
// PUT /v1/businesses/:business_id - Requires business authentication. Returns 200 OK.
func (h *BusinessHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateBusinessRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	business, err := h.businessUseCase.Update(c.Request.Context(), &businessDomain.UpdateBusinessInput{
		ID:                c.Param(BusinessIDParam),
		DisplayName:       req.DisplayName,
		Category:          req.Category,
		Location:          req.Location,
		StampsNeeded:      req.StampsNeeded,
		RewardDescription: req.RewardDescription,
		IsActive:          req.IsActive,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBusinessToResponse(business))
}
