package model

// ConversationState is the discrete dialog step a chat is currently at.
// Exactly one state is associated with a chat at any time. An absent store
// entry is equivalent to StateStart.
type ConversationState string

const (
	// StateStart renders the product menu on any input.
	StateStart ConversationState = "START"
	// StateHandleMenu interprets menu selections (product or cart).
	StateHandleMenu ConversationState = "HANDLE_MENU"
	// StateHandleDescription interprets quantity and navigation selections
	// on a product card.
	StateHandleDescription ConversationState = "HANDLE_DESCRIPTION"
	// StateHandleCart interprets cart-view selections (remove, menu, pay).
	StateHandleCart ConversationState = "HANDLE_CART"
	// StateWaitingEmail expects a typed email address to finish checkout.
	StateWaitingEmail ConversationState = "WAITING_EMAIL"
)

// ParseState validates a raw stored value against the known enumeration.
// Anything else is corrupt store content and yields a dispatch error.
func ParseState(s string) (ConversationState, error) {
	switch state := ConversationState(s); state {
	case StateStart, StateHandleMenu, StateHandleDescription, StateHandleCart, StateWaitingEmail:
		return state, nil
	}
	return "", NewDispatchError(s)
}
