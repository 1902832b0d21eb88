package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	businessHTTP "github.com/allisson/stampd/internal/business/http"
	"github.com/allisson/stampd/internal/httputil"
	"github.com/allisson/stampd/internal/ledger/http/dto"
	ledgerUseCase "github.com/allisson/stampd/internal/ledger/usecase"
)

// CustomerIDParam is the route parameter holding the customer id.
const CustomerIDParam = "customer_id"

// CardHandler handles HTTP requests for customer cards.
type CardHandler struct {
	cardUseCase ledgerUseCase.CardUseCase
	logger      *slog.Logger
}

// NewCardHandler creates a new card handler with required dependencies.
func NewCardHandler(cardUseCase ledgerUseCase.CardUseCase, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		cardUseCase: cardUseCase,
		logger:      logger,
	}
}

// ListHandler lists the cards of a customer.
// GET /v1/customers/:customer_id/cards - Returns 200 OK.
func (h *CardHandler) ListHandler(c *gin.Context) {
	records, err := h.cardUseCase.ListByCustomer(c.Request.Context(), c.Param(CustomerIDParam))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

// GetHandler returns the card of a customer at one business.
// GET /v1/customers/:customer_id/cards/:business_id - Returns 200 OK or 404 Not Found.
func (h *CardHandler) GetHandler(c *gin.Context) {
	record, err := h.cardUseCase.Get(
		c.Request.Context(),
		c.Param(CustomerIDParam),
		c.Param(businessHTTP.BusinessIDParam),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}
