package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the terminal error type surfaced to callers. None of these
// conditions are transient, so nothing in the service layer retries them.
type AppError struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithMeta attaches a structured detail for client messaging, e.g. the
// configured daily limit on a quota error.
func (e *AppError) WithMeta(key string, value interface{}) *AppError {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{}, 1)
	}
	e.Meta[key] = value
	return e
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidArg(msg string) *AppError { return New(CodeInvalidArgument, msg) }

func NotFound(msg string) *AppError { return New(CodeNotFound, msg) }

func AlreadyExists(msg string) *AppError { return New(CodeAlreadyExists, msg) }

func Unauthenticated(msg string) *AppError { return New(CodeUnauthenticated, msg) }

func Forbidden(msg string) *AppError { return New(CodePermissionDenied, msg) }

func InvalidState(msg string) *AppError { return New(CodeFailedPrecondition, msg) }

func QuotaExceeded(msg string) *AppError { return New(CodeResourceExhausted, msg) }

func Internal(msg string) *AppError { return New(CodeInternal, msg) }

// CodeOf extracts the application code from an error chain, or CodeUnknown.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// HTTPStatus maps an application code to the HTTP status handlers respond with.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeFailedPrecondition:
		return http.StatusConflict
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
