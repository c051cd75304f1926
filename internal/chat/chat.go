// Package chat defines the transport-agnostic contract between the dialog
// core and the Telegram adapter: the inbound event shape and the outbound
// send/download operations.
package chat

import "context"

// Event is a single inbound update, already stripped of transport detail.
// Callback is non-empty for inline-button presses; Photo/Document carry
// attachment references for file messages.
type Event struct {
	UserID   int64
	ChatID   int64
	Username string
	Text     string
	Photo    *Attachment
	Document *Attachment
	Callback string
}

type Attachment struct {
	FileID string
	Name   string
}

// Button is one inline-keyboard button. Token is the opaque callback token
// delivered back as Event.Callback when the button is pressed.
type Button struct {
	Label string
	Token string
}

// Keyboard holds either an inline keyboard or a persistent reply keyboard.
type Keyboard struct {
	Inline [][]Button
	Reply  [][]string
}

// InlineColumn builds a keyboard with one button per row.
func InlineColumn(buttons ...Button) *Keyboard {
	kb := &Keyboard{}
	for _, b := range buttons {
		kb.Inline = append(kb.Inline, []Button{b})
	}
	return kb
}

// Messenger sends outbound messages. Implemented by the Telegram adapter.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	SendHTML(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, path, caption string, kb *Keyboard) error
	SendDocument(ctx context.Context, chatID int64, path, caption string) error
}

// Files downloads an attachment by its transport file id and stores it
// locally, returning the stored path.
type Files interface {
	Save(ctx context.Context, fileID, name string) (string, error)
}
