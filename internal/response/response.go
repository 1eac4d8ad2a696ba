package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes used across the service
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeInvalidAttachment = "INVALID_ATTACHMENT"
	ErrCodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	ErrCodeUpstream          = "UPSTREAM_FAILURE"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// AppError is a service-layer error carrying a stable code
type AppError struct {
	Code    string
	Message string
	Details string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// ErrorDetail represents error details in the JSON envelope
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse represents a plain success response body
type SuccessResponse struct {
	Message string `json:"message"`
}

// SendError writes a JSON error envelope with the given status
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

// SendSuccess writes the payload as-is with the given status
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
