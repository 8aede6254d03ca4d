package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/httputil"
	"github.com/kindredgraph/kindred/internal/kinship"
	"github.com/kindredgraph/kindred/internal/middleware"
	"github.com/kindredgraph/kindred/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeValidationError = "validation_error"
	ErrCodeNotFound        = "not_found"
	ErrCodeTooLarge        = "neighborhood_too_large"
	ErrCodeBodyTooLarge    = "body_too_large"
	ErrCodeTimeout         = "timeout"
	ErrCodeInternalError   = "internal_error"
)

// respondError delegates to the shared httputil.RespondError helper.
func respondError(c *gin.Context, status int, code, message string) {
	httputil.RespondError(c, status, code, message)
}

// classifyError maps a service error to an HTTP status, an error code and a
// message that is safe to show to the caller.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, kinship.ErrInvalidMaxDepth):
		return http.StatusBadRequest, ErrCodeValidationError, err.Error()
	case errors.Is(err, kinship.ErrPersonNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, models.ErrNeighborhoodTooLarge):
		return http.StatusUnprocessableEntity, ErrCodeTooLarge, "too many relatives within the requested depth; lower max_depth"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, "internal server error"
	}
}

// handleServiceError logs unexpected failures and writes the mapped response.
func handleServiceError(c *gin.Context, log *logrus.Logger, op string, err error) {
	status, code, message := classifyError(err)

	if status >= http.StatusInternalServerError {
		middleware.LogEntry(c, log).WithError(err).WithField("op", op).Error("request failed")
	}

	respondError(c, status, code, message)
}

// handleBindError answers a request body that could not be decoded.
func handleBindError(c *gin.Context, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		respondError(c, http.StatusRequestEntityTooLarge, ErrCodeBodyTooLarge, "request body too large")

		return
	}

	respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")
}
