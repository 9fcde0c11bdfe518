package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botAPIStub struct {
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
	params    map[string]tgbotapi.Params
	err       error
}

func (s *botAPIStub) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{MessageID: 77}, s.err
}

func (s *botAPIStub) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.requested = append(s.requested, c)
	return &tgbotapi.APIResponse{Ok: s.err == nil}, s.err
}

func (s *botAPIStub) MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error) {
	if s.params == nil {
		s.params = map[string]tgbotapi.Params{}
	}
	s.params[endpoint] = params
	return &tgbotapi.APIResponse{Ok: s.err == nil}, s.err
}

func TestTelegramSend(t *testing.T) {
	api := &botAPIStub{}
	tg := &Telegram{api: api}

	id, err := tg.Send(context.Background(), 42, "<b>hi</b>", BackKeyboard())
	if err != nil || id != 77 {
		t.Fatalf("unexpected result %d, %v", id, err)
	}
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("unexpected chattable %T", api.sent[0])
	}
	if msg.ChatID != 42 || msg.ParseMode != tgbotapi.ModeHTML {
		t.Fatalf("unexpected message %+v", msg)
	}
	if _, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); !ok {
		t.Fatalf("keyboard not attached: %T", msg.ReplyMarkup)
	}
}

func TestTelegramEditIgnoresUnchangedMessage(t *testing.T) {
	api := &botAPIStub{err: errors.New("Bad Request: message is not modified")}
	tg := &Telegram{api: api}
	if err := tg.Edit(context.Background(), 1, 2, "text", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	api.err = errors.New("Bad Request: message to edit not found")
	if err := tg.Edit(context.Background(), 1, 2, "text", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestTelegramRequests(t *testing.T) {
	api := &botAPIStub{}
	tg := &Telegram{api: api}
	ctx := context.Background()

	if err := tg.Answer(ctx, "cb", "ok"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := tg.Delete(ctx, 1, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := tg.Sticker(ctx, 1, stickerGreeting); err != nil {
		t.Fatalf("sticker: %v", err)
	}
	if _, ok := api.requested[0].(tgbotapi.CallbackConfig); !ok {
		t.Fatalf("unexpected answer request %T", api.requested[0])
	}
	if _, ok := api.requested[1].(tgbotapi.DeleteMessageConfig); !ok {
		t.Fatalf("unexpected delete request %T", api.requested[1])
	}
	if _, ok := api.sent[0].(tgbotapi.StickerConfig); !ok {
		t.Fatalf("unexpected sticker request %T", api.sent[0])
	}
}

func TestTelegramHonoursCancelledContext(t *testing.T) {
	api := &botAPIStub{}
	tg := &Telegram{api: api}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tg.Send(ctx, 1, "x", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if len(api.sent) != 0 {
		t.Fatal("request issued after cancellation")
	}
}

func TestWebhookRegistration(t *testing.T) {
	api := &botAPIStub{}
	if err := SetWebhook(api, "https://bot.example.com/webhook", "s3cret"); err != nil {
		t.Fatalf("set webhook: %v", err)
	}
	params := api.params["setWebhook"]
	if params["url"] != "https://bot.example.com/webhook" || params["secret_token"] != "s3cret" {
		t.Fatalf("unexpected params %v", params)
	}
	if err := DeleteWebhook(api); err != nil {
		t.Fatalf("delete webhook: %v", err)
	}
	if _, ok := api.params["deleteWebhook"]; !ok {
		t.Fatal("deleteWebhook not requested")
	}

	api.err = errors.New("unauthorized")
	if err := SetWebhook(api, "https://bot.example.com/webhook", ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestFromTelegram(t *testing.T) {
	cb := FromTelegram(tgbotapi.Update{
		UpdateID: 5,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "q",
			From:    &tgbotapi.User{ID: 42, UserName: "ivan"},
			Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: 42}},
			Data:    "v1|main|main|1|0",
		},
	})
	if cb.Kind() != KindCallback || cb.ChatID != 42 || cb.MessageID != 9 || cb.Data != "v1|main|main|1|0" || cb.Username != "ivan" {
		t.Fatalf("unexpected callback update %+v", cb)
	}

	cmd := FromTelegram(tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 3,
			From:      &tgbotapi.User{ID: 42},
			Chat:      &tgbotapi.Chat{ID: 42},
			Text:      "/start",
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
		},
	})
	if cmd.Kind() != KindCommand || cmd.Command != CommandStart {
		t.Fatalf("unexpected command update %+v", cmd)
	}

	msg := FromTelegram(tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "привет"}})
	if msg.Kind() != KindMessage || msg.Command != "" {
		t.Fatalf("unexpected text update %+v", msg)
	}
}
