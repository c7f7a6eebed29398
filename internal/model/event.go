package model

import (
	"strconv"
	"strings"
)

// EventKind discriminates the two inbound event shapes.
type EventKind int

const (
	// EventText is a typed message.
	EventText EventKind = iota
	// EventCallback is an inline-keyboard button selection.
	EventCallback
)

// Sentinel callback tokens understood by the state handlers. Any other token
// is either a product identifier, a cart line-item identifier, or a compound
// "<product_id>, <qty>" pair.
const (
	TokenCart       = "cart"
	TokenMenu       = "menu"
	TokenPayment    = "payment"
	TokenBackToMenu = "back_to_menu"
)

// resetCommand restarts the dialog regardless of stored state.
const resetCommand = "/start"

// Event is a normalized unit of user input delivered by the chat transport.
type Event struct {
	Kind      EventKind
	ChatID    int64
	MessageID int

	// Text carries the typed message for EventText.
	Text string
	// Token carries the button payload for EventCallback.
	Token string
	// CallbackID identifies the callback query for acknowledgement.
	CallbackID string
}

// IsReset reports whether the event is the reset command.
func (e Event) IsReset() bool {
	return e.Kind == EventText && strings.TrimSpace(e.Text) == resetCommand
}

// Input returns the payload regardless of kind: the button token for
// callbacks, the typed text otherwise.
func (e Event) Input() string {
	if e.Kind == EventCallback {
		return e.Token
	}
	return e.Text
}

// quantitySeparator is the literal separator inside compound tokens.
const quantitySeparator = ", "

// ParseQuantityToken splits a compound "<product_id>, <qty>" callback token.
// Quantity must parse as a positive integer.
func ParseQuantityToken(token string) (productID string, qty int, err error) {
	productID, qtyStr, ok := strings.Cut(token, quantitySeparator)
	if !ok || productID == "" {
		return "", 0, NewValidationError("selection", "expected \"<product_id>, <qty>\"")
	}
	qty, convErr := strconv.Atoi(qtyStr)
	if convErr != nil {
		return "", 0, NewValidationError("quantity", "not an integer")
	}
	if qty <= 0 {
		return "", 0, NewValidationError("quantity", "must be positive")
	}
	return productID, qty, nil
}
