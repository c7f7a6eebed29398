package statestore

import (
	"context"
	"sync"

	"fishshop-bot/internal/model"
)

// Memory is an in-process Store for tests and local development.
type Memory struct {
	mu     sync.RWMutex
	states map[int64]model.ConversationState
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{states: make(map[int64]model.ConversationState)}
}

// Get returns the stored state for chatID, or a NOT_FOUND error.
func (m *Memory) Get(ctx context.Context, chatID int64) (model.ConversationState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[chatID]
	if !ok {
		return "", model.NewNotFoundError("conversation state")
	}
	return state, nil
}

// Set stores the state for chatID.
func (m *Memory) Set(ctx context.Context, chatID int64, state model.ConversationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[chatID] = state
	return nil
}

var _ Store = (*Memory)(nil)
