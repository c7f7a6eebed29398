package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"auth", NewAuthError(errors.New("boom")), ErrAuth},
		{"upstream", NewUpstreamError("Elasticpath", errors.New("boom")), ErrUpstream},
		{"dispatch", NewDispatchError("BOGUS"), ErrDispatch},
		{"validation", NewValidationError("quantity", "not an integer"), ErrInvalidInput},
		{"not found", NewNotFoundError("chat state"), ErrNotFound},
		{"rate limited", NewRateLimitError("Telegram"), ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
		})
	}
}

func TestErrorUnwrapThroughWrapping(t *testing.T) {
	// Engine code wraps handler errors with context; errors.As must still
	// find the structured error underneath.
	inner := NewUpstreamError("Elasticpath", errors.New("status 502"))
	wrapped := fmt.Errorf("handling event for chat %d: %w", 42, inner)

	var botErr *BotError
	if !errors.As(wrapped, &botErr) {
		t.Fatal("errors.As failed to find BotError in chain")
	}
	if botErr.Code != "UPSTREAM_ERROR" {
		t.Errorf("Code = %q, want UPSTREAM_ERROR", botErr.Code)
	}
	if !errors.Is(wrapped, ErrUpstream) {
		t.Error("errors.Is(wrapped, ErrUpstream) = false")
	}
}
