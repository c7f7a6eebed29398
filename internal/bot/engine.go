// Package bot implements the conversation engine: it resolves each chat's
// current dialog state, dispatches the inbound event to the matching handler,
// and commits the handler's next state back to the store.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"fishshop-bot/internal/commerce"
	"fishshop-bot/internal/model"
	"fishshop-bot/internal/statestore"
	"fishshop-bot/internal/telegram"
)

// Engine drives the per-chat state machine. All dependencies are explicit so
// tests can substitute fakes.
type Engine struct {
	store  statestore.Store
	shop   commerce.Client
	chat   telegram.Sender
	logger *slog.Logger

	// chatLocks serializes events per chat so a read-then-write on the
	// store cannot lose an update. Different chats run concurrently.
	chatLocks sync.Map
}

// NewEngine creates a conversation engine.
func NewEngine(store statestore.Store, shop commerce.Client, chat telegram.Sender, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		shop:   shop,
		chat:   chat,
		logger: logger,
	}
}

// ProcessEvent handles one inbound event end to end: per-chat serialization,
// panic containment, and outcome logging. Safe to call from one goroutine per
// update.
func (e *Engine) ProcessEvent(ctx context.Context, event model.Event) {
	lock := e.chatLock(event.ChatID)
	lock.Lock()
	defer lock.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic while handling event",
				slog.Int64("chat_id", event.ChatID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	start := time.Now()
	err := e.HandleEvent(ctx, event)
	duration := time.Since(start)

	if err != nil {
		e.logger.Error("event handling failed",
			slog.Int64("chat_id", event.ChatID),
			slog.String("input", event.Input()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return
	}
	e.logger.Debug("event handled",
		slog.Int64("chat_id", event.ChatID),
		slog.Duration("duration", duration))
}

// HandleEvent resolves the chat's state, dispatches to the state handler, and
// commits the returned next state. Handler errors leave the stored state
// untouched so the next message retries from the same point; the user gets a
// fallback message either way.
func (e *Engine) HandleEvent(ctx context.Context, event model.Event) error {
	if event.Kind == model.EventCallback && event.CallbackID != "" {
		// Acknowledgement only stops the client's progress spinner,
		// so a failure here is not worth aborting the event.
		if err := e.chat.AnswerCallback(ctx, event.CallbackID); err != nil {
			e.logger.Warn("answering callback failed",
				slog.Int64("chat_id", event.ChatID),
				slog.String("error", err.Error()))
		}
	}

	state, err := e.currentState(ctx, event)
	if err != nil {
		e.apologize(ctx, event.ChatID)
		return err
	}

	next, err := e.dispatch(ctx, state, event)
	if err != nil {
		e.logger.Error("state handler failed",
			slog.Int64("chat_id", event.ChatID),
			slog.String("state", string(state)),
			slog.String("input", event.Input()),
			slog.String("error", err.Error()))
		e.apologize(ctx, event.ChatID)
		return err
	}

	if err := e.store.Set(ctx, event.ChatID, next); err != nil {
		e.apologize(ctx, event.ChatID)
		return fmt.Errorf("committing state %s for chat %d: %w", next, event.ChatID, err)
	}
	return nil
}

// currentState resolves the state to dispatch on. The reset command forces
// START regardless of stored value; a chat with no stored entry is a fresh
// session at START.
func (e *Engine) currentState(ctx context.Context, event model.Event) (model.ConversationState, error) {
	if event.IsReset() {
		return model.StateStart, nil
	}

	state, err := e.store.Get(ctx, event.ChatID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.StateStart, nil
		}
		return "", err
	}
	return state, nil
}

// dispatch routes the event to the handler for state. The switch is
// exhaustive over the state enumeration; anything else is a dispatch error.
func (e *Engine) dispatch(ctx context.Context, state model.ConversationState, event model.Event) (model.ConversationState, error) {
	switch state {
	case model.StateStart:
		return e.handleStart(ctx, event)
	case model.StateHandleMenu:
		return e.handleMenu(ctx, event)
	case model.StateHandleDescription:
		return e.handleDescription(ctx, event)
	case model.StateHandleCart:
		return e.handleCart(ctx, event)
	case model.StateWaitingEmail:
		return e.handleWaitingEmail(ctx, event)
	default:
		return "", model.NewDispatchError(string(state))
	}
}

// apologize sends the generic failure message. Best effort: the original
// failure is what gets propagated, not this send.
func (e *Engine) apologize(ctx context.Context, chatID int64) {
	if _, err := e.chat.SendMessage(ctx, chatID, msgSomethingWrong, nil); err != nil {
		e.logger.Warn("sending fallback message failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
	}
}

func (e *Engine) chatLock(chatID int64) *sync.Mutex {
	lock, _ := e.chatLocks.LoadOrStore(chatID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
