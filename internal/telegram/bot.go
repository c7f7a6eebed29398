package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fishshop-bot/internal/model"
)

// pollTimeout is the long-poll timeout for getUpdates, in seconds.
const pollTimeout = 30

// Bot wraps the Telegram Bot API client.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot authenticates against the Telegram Bot API with the given token.
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, model.NewAuthError(fmt.Errorf("telegram authentication: %w", err))
	}
	return &Bot{api: api}, nil
}

// Username returns the bot account's username, for startup logging.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Updates returns the long-polling update channel.
func (b *Bot) Updates() tgbotapi.UpdatesChannel {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	return b.api.GetUpdatesChan(cfg)
}

// Stop shuts down the long-polling loop. The Updates channel closes once the
// in-flight request returns.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a text message with an optional inline keyboard.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string, menu Menu) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard := inlineKeyboard(menu); keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, model.NewUpstreamError("Telegram", err)
	}
	return sent.MessageID, nil
}

// SendPhoto sends a photo by URL with a caption and an optional inline
// keyboard.
func (b *Bot) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, menu Menu) (int, error) {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	msg.Caption = caption
	if keyboard := inlineKeyboard(menu); keyboard != nil {
		msg.ReplyMarkup = keyboard
	}

	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, model.NewUpstreamError("Telegram", err)
	}
	return sent.MessageID, nil
}

// DeleteMessage removes a previously sent message.
func (b *Bot) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return model.NewUpstreamError("Telegram", err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query.
func (b *Bot) AnswerCallback(ctx context.Context, callbackID string) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return model.NewUpstreamError("Telegram", err)
	}
	return nil
}

// inlineKeyboard converts a Menu to the wire keyboard, or nil for an empty
// menu.
func inlineKeyboard(menu Menu) *tgbotapi.InlineKeyboardMarkup {
	if len(menu) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu))
	for _, row := range menu {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token))
		}
		rows = append(rows, buttons)
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard
}

// EventFromUpdate normalizes a Telegram update into an Event. The second
// return value is false for update kinds the bot does not handle (edits,
// channel posts, non-text messages).
func EventFromUpdate(update tgbotapi.Update) (model.Event, bool) {
	if cb := update.CallbackQuery; cb != nil && cb.Message != nil {
		return model.Event{
			Kind:       model.EventCallback,
			ChatID:     cb.Message.Chat.ID,
			MessageID:  cb.Message.MessageID,
			Token:      cb.Data,
			CallbackID: cb.ID,
		}, true
	}

	if msg := update.Message; msg != nil && msg.Text != "" {
		return model.Event{
			Kind:      model.EventText,
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
			Text:      msg.Text,
		}, true
	}

	return model.Event{}, false
}

var _ Sender = (*Bot)(nil)
