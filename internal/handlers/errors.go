package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/observability"
	"github.com/nagrik-seva/app-docvault/internal/services"
)

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP status codes. Unknown
// errors become a generic 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidDocumentType),
		errors.Is(err, models.ErrInvalidField),
		errors.Is(err, models.ErrInvalidFieldValue),
		errors.Is(err, models.ErrInvalidOutcome),
		errors.Is(err, services.ErrNoEmailOnRecord):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrOTPInvalid),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrCitizenNotFound),
		errors.Is(err, models.ErrAdminNotFound),
		errors.Is(err, models.ErrDocumentNotFound),
		errors.Is(err, models.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrAlreadyDecided),
		errors.Is(err, models.ErrDuplicateDocument):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrQuotaExceeded),
		errors.Is(err, services.ErrOTPTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})

	default:
		observability.Logger().Error("unhandled error in request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
