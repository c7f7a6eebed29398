// Package statestore persists each chat's conversation state so the dialog
// survives process restarts. Redis is the production backend; the in-memory
// store backs tests.
package statestore

import (
	"context"

	"fishshop-bot/internal/model"
)

// Store persists conversation state keyed by chat id.
type Store interface {
	// Get returns the stored state for chatID. A chat with no stored state
	// returns a NOT_FOUND error; callers treat that as a fresh session.
	Get(ctx context.Context, chatID int64) (model.ConversationState, error)

	// Set stores the state for chatID, overwriting any previous value.
	Set(ctx context.Context, chatID int64, state model.ConversationState) error
}
