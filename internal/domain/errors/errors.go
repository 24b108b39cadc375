package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same error code, so a copy made by
// WithDetails still satisfies errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// Predefined error types
var (
	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrMissingRequiredFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_REQUIRED_FIELDS",
		"Street, city and phone are required",
		"",
	)

	ErrEmptyCheckout = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CHECKOUT",
		"There is nothing to check out",
		"",
	)

	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Quantity must be at least 1",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Not enough stock for the requested quantity",
		"",
	)

	ErrInvalidDeliveryFee = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DELIVERY_FEE",
		"Delivery fee cannot be negative",
		"",
	)

	// Checkout session errors
	ErrCheckoutNotFound = NewBaseError(
		http.StatusNotFound,
		"CHECKOUT_NOT_FOUND",
		"Checkout session not found or expired",
		"",
	)

	ErrCheckoutForbidden = NewBaseError(
		http.StatusForbidden,
		"CHECKOUT_FORBIDDEN",
		"Checkout session belongs to another session",
		"",
	)

	ErrCheckoutSubmitting = NewBaseError(
		http.StatusConflict,
		"CHECKOUT_SUBMITTING",
		"This order is already being submitted",
		"",
	)

	ErrDeliveryFeeOutdated = NewBaseError(
		http.StatusConflict,
		"DELIVERY_FEE_OUTDATED",
		"The delivery address changed, please review the updated delivery fee",
		"",
	)

	// Location errors
	ErrLocationPermissionDenied = NewBaseError(
		http.StatusUnprocessableEntity,
		"LOCATION_PERMISSION_DENIED",
		"Location permission was denied",
		"",
	)

	ErrLocationUnavailable = NewBaseError(
		http.StatusUnprocessableEntity,
		"LOCATION_UNAVAILABLE",
		"Location is unavailable on this device",
		"",
	)

	// Upload errors
	ErrFileTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"FILE_TOO_LARGE",
		"File exceeds the maximum allowed size",
		"",
	)

	ErrUnsupportedFileType = NewBaseError(
		http.StatusUnsupportedMediaType,
		"UNSUPPORTED_FILE_TYPE",
		"File type is not supported",
		"",
	)

	// Session errors
	ErrSessionNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_NOT_FOUND",
		"No active session",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Session has expired, please log in again",
		"",
	)

	// Upstream errors
	ErrNetwork = NewBaseError(
		http.StatusServiceUnavailable,
		"NETWORK_ERROR",
		"Network error: unable to connect",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// BackendError carries an error reported by the marketplace backend. The
// backend's message is surfaced to the client verbatim.
type BackendError struct {
	status  int
	message string
}

// NewBackendError creates a BackendError for a non-2xx backend response
func NewBackendError(status int, message string) *BackendError {
	if message == "" {
		message = http.StatusText(status)
	}

	return &BackendError{status: status, message: message}
}

// Error implements the error interface
func (e *BackendError) Error() string {
	return e.message
}

// Status returns the status code the backend answered with
func (e *BackendError) Status() int {
	return e.status
}

// HTTPCode passes 4xx through; backend 5xx become 502 Bad Gateway
func (e *BackendError) HTTPCode() int {
	if e.status >= 400 && e.status < 500 {
		return e.status
	}

	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *BackendError) ErrorCode() string {
	return "BACKEND_ERROR"
}

// Message returns the backend message
func (e *BackendError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BackendError) Details() string {
	return ""
}

// IsNotFound reports whether err is a backend 404
func IsNotFound(err error) bool {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.status == http.StatusNotFound
	}

	return false
}
