package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrUnauthorized   = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized access")
	ErrForbidden      = New("FORBIDDEN", http.StatusForbidden, "forbidden message")
	ErrNotFound       = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict       = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation     = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrSeatsExhausted = New("SEATS_EXHAUSTED", http.StatusConflict, "no seats available")
	ErrInternal       = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrStore          = New("STORE_ERROR", http.StatusInternalServerError, "document store failure")
	ErrCacheMiss      = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// CheckoutError reports a checkout that failed mid-flight and was rolled
// back. Stage names the step that broke; Causes carries the primary
// failure followed by any compensation failures.
type CheckoutError struct {
	Stage  string
	Causes []error
}

// Error implements the error interface.
func (e *CheckoutError) Error() string {
	msgs := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		msgs = append(msgs, c.Error())
	}
	return fmt.Sprintf("checkout failed at %s: %s", e.Stage, strings.Join(msgs, "; "))
}

// Unwrap exposes the underlying causes to errors.Is/As.
func (e *CheckoutError) Unwrap() []error {
	return e.Causes
}

// NewCheckoutError builds a CheckoutError for the given stage.
func NewCheckoutError(stage string, causes ...error) *CheckoutError {
	return &CheckoutError{Stage: stage, Causes: causes}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var ce *CheckoutError
	if errors.As(err, &ce) {
		return Wrap(ce, "CHECKOUT_FAILED", http.StatusBadGateway, "checkout failed, no changes were applied")
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
