package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fishshop-bot/internal/model"
)

func TestInlineKeyboard(t *testing.T) {
	menu := Menu{
		{{Label: "Salmon", Token: "p1"}, {Label: "Tuna", Token: "p2"}},
		{{Label: "Cart", Token: model.TokenCart}},
	}

	keyboard := inlineKeyboard(menu)
	if keyboard == nil {
		t.Fatal("expected keyboard, got nil")
	}
	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(keyboard.InlineKeyboard))
	}
	if len(keyboard.InlineKeyboard[0]) != 2 {
		t.Errorf("expected 2 buttons in first row, got %d", len(keyboard.InlineKeyboard[0]))
	}

	button := keyboard.InlineKeyboard[0][0]
	if button.Text != "Salmon" {
		t.Errorf("expected label %q, got %q", "Salmon", button.Text)
	}
	if button.CallbackData == nil || *button.CallbackData != "p1" {
		t.Errorf("expected callback data %q, got %v", "p1", button.CallbackData)
	}
}

func TestInlineKeyboardEmpty(t *testing.T) {
	if keyboard := inlineKeyboard(nil); keyboard != nil {
		t.Errorf("expected nil keyboard for empty menu, got %+v", keyboard)
	}
	if keyboard := inlineKeyboard(Menu{}); keyboard != nil {
		t.Errorf("expected nil keyboard for zero-row menu, got %+v", keyboard)
	}
}

func TestEventFromUpdateText(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 10,
			Chat:      &tgbotapi.Chat{ID: 42},
			Text:      "/start",
		},
	}

	event, ok := EventFromUpdate(update)
	if !ok {
		t.Fatal("expected event, got ok=false")
	}
	if event.Kind != model.EventText {
		t.Errorf("expected EventText, got %v", event.Kind)
	}
	if event.ChatID != 42 {
		t.Errorf("expected chat 42, got %d", event.ChatID)
	}
	if event.MessageID != 10 {
		t.Errorf("expected message 10, got %d", event.MessageID)
	}
	if event.Text != "/start" {
		t.Errorf("expected text %q, got %q", "/start", event.Text)
	}
	if !event.IsReset() {
		t.Error("expected /start to be a reset event")
	}
}

func TestEventFromUpdateCallback(t *testing.T) {
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: "p1, 5",
			Message: &tgbotapi.Message{
				MessageID: 11,
				Chat:      &tgbotapi.Chat{ID: 42},
			},
		},
	}

	event, ok := EventFromUpdate(update)
	if !ok {
		t.Fatal("expected event, got ok=false")
	}
	if event.Kind != model.EventCallback {
		t.Errorf("expected EventCallback, got %v", event.Kind)
	}
	if event.Token != "p1, 5" {
		t.Errorf("expected token %q, got %q", "p1, 5", event.Token)
	}
	if event.CallbackID != "cb-1" {
		t.Errorf("expected callback id %q, got %q", "cb-1", event.CallbackID)
	}
	if event.ChatID != 42 || event.MessageID != 11 {
		t.Errorf("unexpected chat/message ids: %d/%d", event.ChatID, event.MessageID)
	}
}

func TestEventFromUpdateIgnored(t *testing.T) {
	tests := []struct {
		name   string
		update tgbotapi.Update
	}{
		{"empty update", tgbotapi.Update{}},
		{"non-text message", tgbotapi.Update{
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}},
		}},
		{"callback without message", tgbotapi.Update{
			CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb", Data: "x"},
		}},
		{"edited message", tgbotapi.Update{
			EditedMessage: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "hi"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := EventFromUpdate(tt.update); ok {
				t.Error("expected update to be ignored")
			}
		})
	}
}
