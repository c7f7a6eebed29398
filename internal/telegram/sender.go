// Package telegram adapts the Telegram Bot API to the event and rendering
// primitives the conversation engine works with.
package telegram

import "context"

// Button is one inline-keyboard button: a visible label and the token
// delivered back when the user presses it.
type Button struct {
	Label string
	Token string
}

// Menu is an inline keyboard, row by row. A nil Menu renders no keyboard.
type Menu [][]Button

// Sender is the outbound side of the chat transport. All sends return the id
// of the created message so callers can delete superseded screens.
type Sender interface {
	// SendMessage sends a text message with an optional inline keyboard.
	SendMessage(ctx context.Context, chatID int64, text string, menu Menu) (int, error)

	// SendPhoto sends a photo by URL with a caption and an optional
	// inline keyboard.
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, menu Menu) (int, error)

	// DeleteMessage removes a previously sent message.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// AnswerCallback acknowledges a callback query so the client stops
	// showing a progress indicator.
	AnswerCallback(ctx context.Context, callbackID string) error
}
