package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ainft-labs/ainft-sync/internal/api/shared/errors"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(message))
}

// respondInternalError responds with an internal server error
func respondInternalError(c *gin.Context, err error, message string, details ...string) {
	logger.ErrorCtx(c.Request.Context(), err)
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message, details...))
}

// respondDomainError translates an engine error into the matching HTTP status,
// preserving the engine's error code on the wire.
func respondDomainError(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	apiErr := &errors.APIError{
		Code:    errors.ErrorCode(code),
		Message: err.Error(),
	}

	switch code {
	case domain.ErrCodeNotFound:
		c.JSON(http.StatusNotFound, apiErr)
	case domain.ErrCodePermissionDenied:
		apiErr.Code = errors.ErrCodeForbidden
		c.JSON(http.StatusForbidden, apiErr)
	case domain.ErrCodeAlreadyExists:
		apiErr.Code = errors.ErrCodeConflict
		c.JSON(http.StatusConflict, apiErr)
	case domain.ErrCodePayloadTooLarge:
		c.JSON(http.StatusRequestEntityTooLarge, apiErr)
	case domain.ErrCodeUnavailable:
		c.JSON(http.StatusServiceUnavailable, apiErr)
	case domain.ErrCodeDeadlineExceeded:
		c.JSON(http.StatusGatewayTimeout, apiErr)
	case domain.ErrCodeProviderError:
		c.JSON(http.StatusBadGateway, apiErr)
	default:
		respondInternalError(c, err, "Internal error")
	}
}
