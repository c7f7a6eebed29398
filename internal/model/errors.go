package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases.
// Use errors.Is() to check against these.
var (
	ErrAuth         = errors.New("authentication failed")
	ErrUpstream     = errors.New("upstream error")
	ErrDispatch     = errors.New("dispatch error")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
)

// BotError represents a structured error with a machine-readable code.
// Implements error interface and supports unwrapping.
type BotError struct {
	Code    string
	Message string
	Err     error // Wrapped error
}

func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BotError) Unwrap() error {
	return e.Err
}

// NewAuthError creates an error for a failed bearer-token exchange.
// Fatal for the current event; the stored state must not advance.
func NewAuthError(err error) *BotError {
	return &BotError{
		Code:    "AUTH_ERROR",
		Message: "credential exchange failed",
		Err:     fmt.Errorf("%w: %v", ErrAuth, err),
	}
}

// NewUpstreamError creates an error for a failed remote call.
func NewUpstreamError(service string, err error) *BotError {
	return &BotError{
		Code:    "UPSTREAM_ERROR",
		Message: fmt.Sprintf("%s request failed", service),
		Err:     fmt.Errorf("%w: %v", ErrUpstream, err),
	}
}

// NewDispatchError creates an error for a stored state outside the known
// enumeration, or one with no registered handler.
func NewDispatchError(state string) *BotError {
	return &BotError{
		Code:    "DISPATCH_ERROR",
		Message: fmt.Sprintf("no handler for state %q", state),
		Err:     ErrDispatch,
	}
}

// NewValidationError creates an error for malformed user input.
// Handled inside the relevant handler by re-prompting; not a process failure.
func NewValidationError(field, reason string) *BotError {
	return &BotError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Err:     ErrInvalidInput,
	}
}

// NewNotFoundError creates an error for missing resources.
func NewNotFoundError(resource string) *BotError {
	return &BotError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Err:     ErrNotFound,
	}
}

// NewRateLimitError creates an error for upstream rate limiting.
func NewRateLimitError(service string) *BotError {
	return &BotError{
		Code:    "RATE_LIMITED",
		Message: fmt.Sprintf("%s rate limit exceeded, please retry later", service),
		Err:     ErrRateLimited,
	}
}
