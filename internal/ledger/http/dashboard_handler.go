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

const maxRecentLimit = 100

// DashboardHandler handles HTTP requests for business dashboards.
type DashboardHandler struct {
	dashboardUseCase ledgerUseCase.DashboardUseCase
	defaultLimit     int
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler. defaultLimit is the number of
// recent entries returned when the request has no limit parameter.
func NewDashboardHandler(
	dashboardUseCase ledgerUseCase.DashboardUseCase,
	defaultLimit int,
	logger *slog.Logger,
) *DashboardHandler {
	if defaultLimit < 1 || defaultLimit > maxRecentLimit {
		defaultLimit = 10
	}
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
		defaultLimit:     defaultLimit,
		logger:           logger,
	}
}

// GetHandler returns the dashboard of the authenticated business.
// GET /v1/businesses/:business_id/dashboard?limit=N - Requires business authentication. Returns 200 OK.
func (h *DashboardHandler) GetHandler(c *gin.Context) {
	limit, err := httputil.ParseLimit(c, h.defaultLimit, maxRecentLimit)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	dashboard, err := h.dashboardUseCase.Get(c.Request.Context(), c.Param(businessHTTP.BusinessIDParam), limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDashboardToResponse(dashboard))
}
