package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	businessDomain "github.com/allisson/stampd/internal/business/domain"
	businessUseCase "github.com/allisson/stampd/internal/business/usecase"
	apperrors "github.com/allisson/stampd/internal/errors"
	"github.com/allisson/stampd/internal/httputil"
)

// BusinessIDParam is the path parameter every business-scoped route carries.
const BusinessIDParam = "business_id"

// AuthenticationMiddleware authenticates a business with HTTP Basic credentials,
// the business id as username and the scan secret as password.
//
// The authenticated business must match the :business_id path parameter.
//
// Error handling:
//   - Missing or malformed credentials → 401 Unauthorized
//   - Unknown business or wrong secret → 401 Unauthorized
//   - Credentials for another business → 403 Forbidden
func AuthenticationMiddleware(useCase businessUseCase.BusinessUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, secret, ok := c.Request.BasicAuth()
		if !ok || businessID == "" || secret == "" {
			logger.Debug("business authentication failed: missing credentials")
			c.Header("WWW-Authenticate", `Basic realm="stampd"`)
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if pathID := c.Param(BusinessIDParam); pathID != "" && pathID != businessID {
			logger.Debug("business authentication failed: business mismatch",
				slog.String("business_id", businessID),
				slog.String("path_business_id", pathID))
			httputil.HandleErrorGin(c, businessDomain.ErrBusinessMismatch, logger)
			c.Abort()
			return
		}

		business, err := useCase.Authenticate(c.Request.Context(), businessID, secret)
		if err != nil {
			logger.Debug("business authentication failed",
				slog.String("business_id", businessID),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithBusiness(c.Request.Context(), business))
		c.Next()
	}
}
