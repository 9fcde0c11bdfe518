package test

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Outbound operations recorded by SenderStub.
const (
	OpSend    = "send"
	OpEdit    = "edit"
	OpAnswer  = "answer"
	OpDelete  = "delete"
	OpSticker = "sticker"
)

// Outgoing is one recorded call.
type Outgoing struct {
	Op         string
	ChatID     int64
	MessageID  int
	CallbackID string
	Text       string
	Keyboard   *tgbotapi.InlineKeyboardMarkup
}

// SenderStub records every outbound call in order.
type SenderStub struct {
	SendErr error
	EditErr error

	mu     sync.Mutex
	calls  []Outgoing
	nextID int
}

func (s *SenderStub) record(o Outgoing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, o)
}

// Send records a new message and returns increasing message ids starting at 100.
func (s *SenderStub) Send(_ context.Context, chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) (int, error) {
	if s.SendErr != nil {
		return 0, s.SendErr
	}
	s.mu.Lock()
	s.nextID++
	id := 99 + s.nextID
	s.mu.Unlock()
	s.record(Outgoing{Op: OpSend, ChatID: chatID, MessageID: id, Text: text, Keyboard: kb})
	return id, nil
}

func (s *SenderStub) Edit(_ context.Context, chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	if s.EditErr != nil {
		return s.EditErr
	}
	s.record(Outgoing{Op: OpEdit, ChatID: chatID, MessageID: messageID, Text: text, Keyboard: kb})
	return nil
}

func (s *SenderStub) Answer(_ context.Context, callbackID, text string) error {
	s.record(Outgoing{Op: OpAnswer, CallbackID: callbackID, Text: text})
	return nil
}

func (s *SenderStub) Delete(_ context.Context, chatID int64, messageID int) error {
	s.record(Outgoing{Op: OpDelete, ChatID: chatID, MessageID: messageID})
	return nil
}

func (s *SenderStub) Sticker(_ context.Context, chatID int64, fileID string) error {
	s.record(Outgoing{Op: OpSticker, ChatID: chatID, Text: fileID})
	return nil
}

// Calls returns a copy of the recorded calls.
func (s *SenderStub) Calls() []Outgoing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Outgoing(nil), s.calls...)
}

// Ops returns the recorded operation names.
func (s *SenderStub) Ops() []string {
	calls := s.Calls()
	ops := make([]string, 0, len(calls))
	for _, c := range calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Last returns the latest call of op.
func (s *SenderStub) Last(op string) (Outgoing, bool) {
	calls := s.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Op == op {
			return calls[i], true
		}
	}
	return Outgoing{}, false
}

// Reset forgets the recorded calls.
func (s *SenderStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
