package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied = new(ErrCodePermissionDenied, "permission denied")
	ErrUnauthenticated  = new(ErrCodeUnauthenticated, "unauthenticated")
	ErrNoTenant         = new(ErrCodeNoTenant, "principal has no tenant")
	ErrForbidden        = new(ErrCodeForbidden, "resource belongs to another tenant")
	ErrNoClientEmail    = new(ErrCodeNoClientEmail, "invoice has no client email")
	ErrTooManyRequests  = new(ErrCodeTooManyRequests, "too many requests")
	ErrHTTPClient       = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// language model step
	ErrGenerationMalformed       = new(ErrCodeGenerationMalformed, "model returned malformed output")
	ErrGenerationInvalid         = new(ErrCodeGenerationInvalid, "model output failed validation")
	ErrGenerationUpstreamFailure = new(ErrCodeGenerationUpstream, "model call failed")

	// email transport step
	ErrNotificationUpstreamFailure = new(ErrCodeNotificationUpstream, "email transport failed")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:                  http.StatusInternalServerError,
		ErrDatabase:                    http.StatusInternalServerError,
		ErrNotFound:                    http.StatusNotFound,
		ErrAlreadyExists:               http.StatusConflict,
		ErrValidation:                  http.StatusBadRequest,
		ErrInvalidOperation:            http.StatusBadRequest,
		ErrNoClientEmail:               http.StatusBadRequest,
		ErrUnauthenticated:             http.StatusUnauthorized,
		ErrNoTenant:                    http.StatusForbidden,
		ErrForbidden:                   http.StatusForbidden,
		ErrPermissionDenied:            http.StatusForbidden,
		ErrTooManyRequests:             http.StatusTooManyRequests,
		ErrGenerationMalformed:         http.StatusInternalServerError,
		ErrGenerationInvalid:           http.StatusInternalServerError,
		ErrGenerationUpstreamFailure:   http.StatusInternalServerError,
		ErrNotificationUpstreamFailure: http.StatusInternalServerError,
		ErrSystem:                      http.StatusInternalServerError,
	}
)

const (
	ErrCodeHTTPClient           = "http_client_error"
	ErrCodeSystemError          = "system_error"
	ErrCodeNotFound             = "not_found"
	ErrCodeAlreadyExists        = "already_exists"
	ErrCodeValidation           = "validation_error"
	ErrCodeInvalidOperation     = "invalid_operation"
	ErrCodePermissionDenied     = "permission_denied"
	ErrCodeUnauthenticated      = "unauthenticated"
	ErrCodeNoTenant             = "no_tenant"
	ErrCodeForbidden            = "forbidden"
	ErrCodeNoClientEmail        = "no_client_email"
	ErrCodeTooManyRequests      = "too_many_requests"
	ErrCodeDatabase             = "database_error"
	ErrCodeGenerationMalformed  = "generation_malformed"
	ErrCodeGenerationInvalid    = "generation_invalid"
	ErrCodeGenerationUpstream   = "generation_upstream_failure"
	ErrCodeNotificationUpstream = "notification_upstream_failure"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether err carries the given sentinel
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

func IsNoTenant(err error) bool {
	return errors.Is(err, ErrNoTenant)
}

// IsValidationKind reports whether the error should carry an `errors` list
// in the response body.
func IsValidationKind(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNoClientEmail) ||
		errors.Is(err, ErrGenerationInvalid)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
