package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/api/shared/errors"
	"github.com/feral-file/ff-computed-properties/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errors.NewValidationError(message))
}

// respondError maps an executor error to its API error and status
func respondError(c *gin.Context, err error, message string) {
	apiErr := errors.FromError(err)
	if apiErr.Status() >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("message", message), zap.String("path", c.Request.URL.Path))
		apiErr = errors.NewInternalError(message)
	}
	c.JSON(apiErr.Status(), apiErr)
}
