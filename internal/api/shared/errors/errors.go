package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Status returns the HTTP status code for the error code
func (e *APIError) Status() int {
	switch e.Code {
	case ErrCodeBadRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newAPIError(code ErrorCode, message string, details []string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeNotFound, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newAPIError(ErrCodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeUnauthorized, message, details)
}

func NewConflictError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeConflict, message, details)
}

func NewInternalError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeInternalError, message, details)
}

func NewServiceError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeServiceError, message, details)
}

// FromError maps an error returned by the executor to an API error.
// Unknown errors become internal errors without leaking their text.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		return NewNotFoundError("Workspace not found")
	case errors.Is(err, domain.ErrWorkflowNotFound):
		return NewNotFoundError("Compute process not running")
	case errors.Is(err, domain.ErrInvalidDefinition):
		return NewValidationError(err.Error())
	case errors.Is(err, domain.ErrWorkspaceIneligible):
		return NewConflictError("Workspace is not eligible for computing", err.Error())
	case errors.Is(err, domain.ErrLifecycleConflict):
		return NewConflictError("Compute process is running", err.Error())
	case errors.Is(err, domain.ErrWatermarkConflict), errors.Is(err, domain.ErrWatermarkRegression):
		return NewConflictError("Computation pass conflicted with a concurrent pass", err.Error())
	case errors.Is(err, domain.ErrWorkflowAlreadyStarted):
		return NewConflictError("Compute process already started")
	default:
		return NewInternalError("Internal server error")
	}
}
