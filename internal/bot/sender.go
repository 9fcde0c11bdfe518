package bot

import "context"

// Sender is the outbound side of the chat. Texts are HTML formatted.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string, kb *Keyboard) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, text string, kb *Keyboard) error
	Answer(ctx context.Context, callbackID, text string) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	Sticker(ctx context.Context, chatID int64, fileID string) error
}
