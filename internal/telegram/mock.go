package telegram

import "context"

// Mock implements Sender for testing.
// Each method can be configured via function fields.
type Mock struct {
	SendMessageFunc    func(ctx context.Context, chatID int64, text string, menu Menu) (int, error)
	SendPhotoFunc      func(ctx context.Context, chatID int64, photoURL, caption string, menu Menu) (int, error)
	DeleteMessageFunc  func(ctx context.Context, chatID int64, messageID int) error
	AnswerCallbackFunc func(ctx context.Context, callbackID string) error
}

// SendMessage calls the configured SendMessageFunc or succeeds.
func (m *Mock) SendMessage(ctx context.Context, chatID int64, text string, menu Menu) (int, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, chatID, text, menu)
	}
	return 1, nil
}

// SendPhoto calls the configured SendPhotoFunc or succeeds.
func (m *Mock) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, menu Menu) (int, error) {
	if m.SendPhotoFunc != nil {
		return m.SendPhotoFunc(ctx, chatID, photoURL, caption, menu)
	}
	return 1, nil
}

// DeleteMessage calls the configured DeleteMessageFunc or succeeds.
func (m *Mock) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if m.DeleteMessageFunc != nil {
		return m.DeleteMessageFunc(ctx, chatID, messageID)
	}
	return nil
}

// AnswerCallback calls the configured AnswerCallbackFunc or succeeds.
func (m *Mock) AnswerCallback(ctx context.Context, callbackID string) error {
	if m.AnswerCallbackFunc != nil {
		return m.AnswerCallbackFunc(ctx, callbackID)
	}
	return nil
}

// Verify Mock implements Sender interface at compile time.
var _ Sender = (*Mock)(nil)
