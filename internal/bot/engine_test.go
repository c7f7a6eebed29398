package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fishshop-bot/internal/commerce"
	"fishshop-bot/internal/model"
	"fishshop-bot/internal/statestore"
	"fishshop-bot/internal/telegram"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textEvent(chatID int64, text string) model.Event {
	return model.Event{Kind: model.EventText, ChatID: chatID, MessageID: 1, Text: text}
}

func callbackEvent(chatID int64, token string) model.Event {
	return model.Event{
		Kind:       model.EventCallback,
		ChatID:     chatID,
		MessageID:  2,
		Token:      token,
		CallbackID: "cb-1",
	}
}

func TestResetForcesStart(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()
	if err := store.Set(ctx, 42, model.StateWaitingEmail); err != nil {
		t.Fatal(err)
	}

	var sentMenu telegram.Menu
	chat := &telegram.Mock{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, menu telegram.Menu) (int, error) {
			sentMenu = menu
			return 10, nil
		},
	}
	shop := &commerce.Mock{
		GetProductsFunc: func(ctx context.Context) ([]model.Product, error) {
			return []model.Product{{ID: "p1", Name: "Salmon"}}, nil
		},
	}
	engine := NewEngine(store, shop, chat, testLogger())

	if err := engine.HandleEvent(ctx, textEvent(42, "/start")); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}

	if len(sentMenu) != 2 {
		t.Errorf("expected 1 product row + cart row, got %d rows", len(sentMenu))
	}
	state, err := store.Get(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if state != model.StateHandleMenu {
		t.Errorf("expected HANDLE_MENU after reset, got %s", state)
	}
}

func TestMissingStateTreatedAsFreshSession(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()

	menuSent := false
	chat := &telegram.Mock{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, menu telegram.Menu) (int, error) {
			menuSent = true
			return 10, nil
		},
	}
	engine := NewEngine(store, &commerce.Mock{}, chat, testLogger())

	// Callback for a chat with no stored state, e.g. after a store wipe.
	if err := engine.HandleEvent(ctx, callbackEvent(7, "p1")); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}
	if !menuSent {
		t.Error("expected menu to be rendered for fresh session")
	}
	state, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if state != model.StateHandleMenu {
		t.Errorf("expected HANDLE_MENU, got %s", state)
	}
}

func TestCorruptStateIsDispatchError(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()
	if err := store.Set(ctx, 42, model.ConversationState("GARBAGE")); err != nil {
		t.Fatal(err)
	}

	apologized := false
	chat := &telegram.Mock{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, menu telegram.Menu) (int, error) {
			if text == msgSomethingWrong {
				apologized = true
			}
			return 10, nil
		},
	}
	engine := NewEngine(store, &commerce.Mock{}, chat, testLogger())

	err := engine.HandleEvent(ctx, callbackEvent(42, "p1"))
	if !errors.Is(err, model.ErrDispatch) {
		t.Errorf("expected ErrDispatch, got %v", err)
	}
	if !apologized {
		t.Error("expected fallback message to the user")
	}
}

func TestHandlerFailureLeavesStateUntouched(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()
	if err := store.Set(ctx, 42, model.StateHandleMenu); err != nil {
		t.Fatal(err)
	}

	apologized := false
	chat := &telegram.Mock{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, menu telegram.Menu) (int, error) {
			if text == msgSomethingWrong {
				apologized = true
			}
			return 10, nil
		},
	}
	shop := &commerce.Mock{
		GetCartItemsFunc: func(ctx context.Context, userID string) ([]model.LineItem, error) {
			return nil, model.NewUpstreamError("Elasticpath", errors.New("boom"))
		},
	}
	engine := NewEngine(store, shop, chat, testLogger())

	err := engine.HandleEvent(ctx, callbackEvent(42, model.TokenCart))
	if !errors.Is(err, model.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if !apologized {
		t.Error("expected fallback message to the user")
	}

	state, getErr := store.Get(ctx, 42)
	if getErr != nil {
		t.Fatal(getErr)
	}
	if state != model.StateHandleMenu {
		t.Errorf("expected state to stay HANDLE_MENU, got %s", state)
	}
}

// failingStore errors on every write.
type failingStore struct {
	*statestore.Memory
}

func (f *failingStore) Set(ctx context.Context, chatID int64, state model.ConversationState) error {
	return errors.New("write refused")
}

func TestCommitFailureIsSurfaced(t *testing.T) {
	store := &failingStore{Memory: statestore.NewMemory()}
	ctx := context.Background()

	apologized := false
	chat := &telegram.Mock{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string, menu telegram.Menu) (int, error) {
			if text == msgSomethingWrong {
				apologized = true
			}
			return 10, nil
		},
	}
	engine := NewEngine(store, &commerce.Mock{}, chat, testLogger())

	err := engine.HandleEvent(ctx, textEvent(42, "/start"))
	if err == nil {
		t.Fatal("expected commit failure to surface, got nil")
	}
	if !apologized {
		t.Error("expected fallback message to the user")
	}
}

func TestCallbackIsAnswered(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()
	if err := store.Set(ctx, 42, model.StateHandleDescription); err != nil {
		t.Fatal(err)
	}

	var answered string
	chat := &telegram.Mock{
		AnswerCallbackFunc: func(ctx context.Context, callbackID string) error {
			answered = callbackID
			return nil
		},
	}
	engine := NewEngine(store, &commerce.Mock{}, chat, testLogger())

	if err := engine.HandleEvent(ctx, callbackEvent(42, "p1, 5")); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}
	if answered != "cb-1" {
		t.Errorf("expected callback cb-1 answered, got %q", answered)
	}
}

func TestCallbackAnswerFailureIsNotFatal(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()
	if err := store.Set(ctx, 42, model.StateHandleDescription); err != nil {
		t.Fatal(err)
	}

	chat := &telegram.Mock{
		AnswerCallbackFunc: func(ctx context.Context, callbackID string) error {
			return model.NewUpstreamError("Telegram", errors.New("query too old"))
		},
	}
	engine := NewEngine(store, &commerce.Mock{}, chat, testLogger())

	if err := engine.HandleEvent(ctx, callbackEvent(42, "p1, 5")); err != nil {
		t.Fatalf("expected event to succeed despite answer failure, got %v", err)
	}
}

func TestEventsForOneChatSerialize(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()

	var inFlight, maxInFlight atomic.Int32
	shop := &commerce.Mock{
		GetProductsFunc: func(ctx context.Context) ([]model.Product, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				current := maxInFlight.Load()
				if n <= current || maxInFlight.CompareAndSwap(current, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return nil, nil
		},
	}
	engine := NewEngine(store, shop, &telegram.Mock{}, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engine.ProcessEvent(ctx, textEvent(42, fmt.Sprintf("hello %d", i)))
		}(i)
	}
	wg.Wait()

	if got := maxInFlight.Load(); got > 1 {
		t.Errorf("expected serialized handling for one chat, saw %d concurrent handlers", got)
	}
}

func TestProcessEventRecoversPanic(t *testing.T) {
	store := statestore.NewMemory()
	ctx := context.Background()

	shop := &commerce.Mock{
		GetProductsFunc: func(ctx context.Context) ([]model.Product, error) {
			panic("handler bug")
		},
	}
	engine := NewEngine(store, shop, &telegram.Mock{}, testLogger())

	// Must not crash the process.
	engine.ProcessEvent(ctx, textEvent(42, "/start"))
}
