package rpc

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNotFound             = "NOT_FOUND"
	CodeQuotaExceeded        = "QUOTA_EXCEEDED"
	CodeClarityUnauthorized  = "CLARITY_UNAUTHORIZED"
	CodeClarityForbidden     = "CLARITY_FORBIDDEN"
	CodeClarityBadRequest    = "CLARITY_BAD_REQUEST"
	CodeClarityQuotaExceeded = "CLARITY_QUOTA_EXCEEDED"
	CodeClarityUnknown       = "CLARITY_UNKNOWN"
	CodeUpstreamError        = "UPSTREAM_ERROR"
	CodeInternal             = "INTERNAL"
)

const (
	messageInternal          = "Internal server error"
	messageInvalidInput      = "Invalid input"
	messageUnauthorized      = "Unauthorized"
	messageProcedureNotFound = "procedure not found"
)

// Error is the error shape every procedure failure is reported as. Status
// is the http status the transport responds with.
type Error struct {
	Code    string            `json:"code"`
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// WithCause attaches the underlying error. It is logged, never sent.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

func BadRequest(message string, fields map[string]string) *Error {
	if message == "" {
		message = messageInvalidInput
	}
	return &Error{Code: CodeBadRequest, Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func Unauthorized() *Error {
	return NewError(CodeUnauthorized, http.StatusUnauthorized, messageUnauthorized)
}

func NotFound(message string) *Error {
	return NewError(CodeNotFound, http.StatusNotFound, message)
}

func QuotaExceeded(message string) *Error {
	return NewError(CodeQuotaExceeded, http.StatusTooManyRequests, message)
}

func Upstream(message string, cause error) *Error {
	return NewError(CodeUpstreamError, http.StatusInternalServerError, message).WithCause(cause)
}

func Internal(cause error) *Error {
	return NewError(CodeInternal, http.StatusInternalServerError, messageInternal).WithCause(cause)
}

// AsError returns err as an *Error, hiding anything unknown behind a
// generic internal error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return Internal(err)
}

// FromStatusCode translates a store error code into an *Error. what names
// the entity for not found messages.
func FromStatusCode(errCode int, what string) *Error {
	switch errCode {
	case http.StatusNotFound:
		return NotFound(what + " not found")
	case http.StatusBadRequest:
		return BadRequest("", nil)
	case http.StatusTooManyRequests:
		return QuotaExceeded("Daily quota exceeded")
	}
	return Internal(fmt.Errorf("store returned status %d for %s", errCode, what))
}
