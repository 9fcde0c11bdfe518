package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Kind tells commands, free text and button presses apart.
type Kind string

const (
	KindCommand  Kind = "command"
	KindMessage  Kind = "message"
	KindCallback Kind = "callback"
	KindOther    Kind = "other"
)

// Update is the part of a Telegram update the handlers read.
type Update struct {
	ID        int
	ChatID    int64
	UserID    int64
	Username  string
	MessageID int
	Text      string
	Command   string

	CallbackID string
	Data       string
}

// Kind classifies u.
func (u Update) Kind() Kind {
	switch {
	case u.CallbackID != "":
		return KindCallback
	case u.Command != "":
		return KindCommand
	case u.Text != "":
		return KindMessage
	default:
		return KindOther
	}
}

// FromTelegram flattens a Bot API update. Updates without a chat come back with ChatID 0.
func FromTelegram(u tgbotapi.Update) Update {
	out := Update{ID: u.UpdateID}
	switch {
	case u.CallbackQuery != nil:
		cq := u.CallbackQuery
		out.CallbackID = cq.ID
		out.Data = cq.Data
		if cq.From != nil {
			out.UserID = cq.From.ID
			out.Username = cq.From.UserName
		}
		if cq.Message != nil {
			out.MessageID = cq.Message.MessageID
			if cq.Message.Chat != nil {
				out.ChatID = cq.Message.Chat.ID
			}
		}
		if out.ChatID == 0 {
			out.ChatID = out.UserID
		}
	case u.Message != nil:
		m := u.Message
		out.MessageID = m.MessageID
		out.Text = m.Text
		if m.IsCommand() {
			out.Command = m.Command()
		}
		if m.From != nil {
			out.UserID = m.From.ID
			out.Username = m.From.UserName
		}
		if m.Chat != nil {
			out.ChatID = m.Chat.ID
		}
	}
	return out
}
