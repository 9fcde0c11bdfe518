package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/gate"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/state"
	testhelpers "github.com/ERTG-BOTS/AchieverBot/internal/test"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

const (
	chatID  int64 = 42
	adminID int64 = 7
)

type notifierStub struct {
	sent []model.Redemption
}

func (n *notifierStub) NotifyRedemption(_ context.Context, r model.Redemption) error {
	n.sent = append(n.sent, r)
	return nil
}

type fixture struct {
	handler   *Handler
	sender    *testhelpers.SenderStub
	states    *state.MemoryStore
	notifier  *notifierStub
	primary   *testhelpers.StoreStub
	secondary *testhelpers.StoreStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	stores, primary, secondary := testhelpers.NewStores()

	primary.Session.UsersRepo.Users = []model.User{
		{ChatID: chatID, FullName: "Иванов Иван Иванович", Role: model.RoleSpecialist, Division: "НТП", Position: "Специалист первой линии"},
		{ChatID: adminID, FullName: "Админов Пётр Сергеевич", Role: model.RoleRoot},
		{ChatID: 8, FullName: "Иванова Мария Петровна", Role: model.RoleSpecialist},
		{ChatID: 9, FullName: "Петров Иван Андреевич", Role: model.RoleSpecialist},
	}
	secondary.Session.AccrualsRepo.Sum = 100
	secondary.Session.AwardsRepo.Awards = []model.Award{
		{ID: 1, Name: "Мерч", Cost: 50, Interaction: "МИП", Count: 1, Description: "Футболка"},
		{ID: 2, Name: "Выходной", Cost: 300, Interaction: "Дежурный", Count: 1},
		{ID: 3, Name: "Перерыв", Cost: 60, Interaction: "Старший", Count: 2, ShiftDependent: true},
	}

	f := &fixture{
		sender:    &testhelpers.SenderStub{},
		states:    state.NewMemoryStore(),
		notifier:  &notifierStub{},
		primary:   primary,
		secondary: secondary,
	}
	g := gate.New(stores, logger)
	factory := usecase.NewFactory(&config.Config{}, f.notifier, nil, logger)
	f.handler = NewHandler(g, factory, f.states, f.sender, nil, logger)
	return f
}

func command(chat int64, name string) Update {
	return Update{ChatID: chat, UserID: chat, MessageID: 10, Text: "/" + name, Command: name}
}

func text(chat int64, body string, messageID int) Update {
	return Update{ChatID: chat, UserID: chat, MessageID: messageID, Text: body}
}

func press(chat int64, cb Callback) Update {
	return Update{ChatID: chat, UserID: chat, MessageID: 55, CallbackID: "cb-1", Data: cb.Encode()}
}

func (f *fixture) conversation(t *testing.T, chat int64) state.Conversation {
	t.Helper()
	c, err := f.states.Get(context.Background(), state.Key{ChatID: chat, UserID: chat})
	if err != nil {
		t.Fatalf("get conversation: %v", err)
	}
	return c
}

func (f *fixture) handle(t *testing.T, u Update) {
	t.Helper()
	if outcome := f.handler.Handle(context.Background(), u); outcome != gate.Completed {
		t.Fatalf("expected completed, got %v", outcome)
	}
}

func TestStartGreetsRegisteredUser(t *testing.T) {
	f := newFixture(t)
	f.handle(t, command(chatID, CommandStart))

	ops := f.sender.Ops()
	if len(ops) != 2 || ops[0] != testhelpers.OpSticker || ops[1] != testhelpers.OpSend {
		t.Fatalf("unexpected calls %v", ops)
	}
	msg, _ := f.sender.Last(testhelpers.OpSend)
	if !strings.Contains(msg.Text, "Привет, <b>Иванов Иван Иванович</b>!") {
		t.Fatalf("unexpected greeting %q", msg.Text)
	}
	if msg.Keyboard == nil || len(msg.Keyboard.InlineKeyboard) != 2 {
		t.Fatalf("expected the user menu, got %+v", msg.Keyboard)
	}
}

func TestStartUnregistered(t *testing.T) {
	f := newFixture(t)
	u := command(500, CommandStart)
	u.Username = "stranger"
	f.handle(t, u)

	msg, ok := f.sender.Last(testhelpers.OpSend)
	if !ok || !strings.Contains(msg.Text, "@stranger") || !strings.Contains(msg.Text, "Не нашел тебя") {
		t.Fatalf("unexpected reply %+v", msg)
	}
}

func TestStartAdmin(t *testing.T) {
	f := newFixture(t)
	f.handle(t, command(adminID, CommandStart))

	msg, _ := f.sender.Last(testhelpers.OpSend)
	if !strings.Contains(msg.Text, "🎭 Твоя роль:</b> root") {
		t.Fatalf("expected admin greeting, got %q", msg.Text)
	}
	if _, ok := f.sender.Last(testhelpers.OpSticker); ok {
		t.Fatal("admin menu has no sticker")
	}
}

func TestProfileCallback(t *testing.T) {
	f := newFixture(t)
	f.secondary.Session.ExecutesRepo.Sum = 20
	f.handle(t, press(chatID, to(ScopeMain, MenuLevel)))

	msg, ok := f.sender.Last(testhelpers.OpEdit)
	if !ok || msg.MessageID != 55 {
		t.Fatalf("expected the pressed message to be edited, got %+v", msg)
	}
	for _, want := range []string{"Текущее кол-во баллов: <b>80</b>", "Уровень: <b>1</b>", "Всего потрачено: <b>20</b>"} {
		if !strings.Contains(msg.Text, want) {
			t.Fatalf("profile lacks %q:\n%s", want, msg.Text)
		}
	}
	if answer, ok := f.sender.Last(testhelpers.OpAnswer); !ok || answer.CallbackID != "cb-1" || answer.Text != "" {
		t.Fatalf("expected a silent answer, got %+v", answer)
	}
}

func TestAvailableClampsPage(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(chatID, Callback{Scope: ScopeAvail, Menu: MenuPage, Page: 9}))

	msg, _ := f.sender.Last(testhelpers.OpEdit)
	if !strings.Contains(msg.Text, "💰 Ваш баланс: 100 очков") || !strings.Contains(msg.Text, "Страница 1 из 1") {
		t.Fatalf("unexpected page:\n%s", msg.Text)
	}
	if strings.Contains(msg.Text, "Выходной") {
		t.Fatal("unaffordable award listed")
	}
}

func TestAvailableEmpty(t *testing.T) {
	f := newFixture(t)
	f.secondary.Session.AccrualsRepo.Sum = 0
	f.handle(t, press(chatID, to(ScopeAwards, MenuAvailable)))

	msg, _ := f.sender.Last(testhelpers.OpEdit)
	if !strings.Contains(msg.Text, "Пока нет доступных наград.") {
		t.Fatalf("unexpected text:\n%s", msg.Text)
	}
}

func TestSelectRejectsUnavailableAward(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(chatID, Callback{Scope: ScopeSelect, Page: 1, Award: 2}))

	answer, _ := f.sender.Last(testhelpers.OpAnswer)
	if answer.Text != textAwardUnavailable {
		t.Fatalf("unexpected alert %q", answer.Text)
	}
	if len(f.sender.Calls()) != 1 {
		t.Fatalf("expected only the alert, got %v", f.sender.Ops())
	}
	if c := f.conversation(t, chatID); c.AwardID != 0 {
		t.Fatalf("rejected selection stored: %+v", c)
	}
}

func TestRejectedSelectionReturnsToBrowsing(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(chatID, Callback{Scope: ScopeSelect, Page: 1, Award: 1}))
	f.handle(t, press(chatID, Callback{Scope: ScopeSelect, Page: 1, Award: 2}))

	if c := f.conversation(t, chatID); c.Stage != state.StageBrowsing || c.AwardID != 0 {
		t.Fatalf("expected browsing after a rejected selection, got %+v", c)
	}
	f.handle(t, press(chatID, Callback{Scope: ScopeAwards, Menu: MenuConfirm, Page: 1, Award: 1}))
	if c := f.conversation(t, chatID); c.AwaitingComment() {
		t.Fatalf("confirm of an abandoned preview accepted: %+v", c)
	}
}

func TestSelectRequiresShift(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(chatID, Callback{Scope: ScopeSelect, Page: 1, Award: 3}))

	answer, _ := f.sender.Last(testhelpers.OpAnswer)
	if answer.Text != textNotOnShift {
		t.Fatalf("unexpected alert %q", answer.Text)
	}
}

func TestRedemptionFlow(t *testing.T) {
	f := newFixture(t)

	f.handle(t, press(chatID, Callback{Scope: ScopeSelect, Page: 1, Award: 1}))
	preview, _ := f.sender.Last(testhelpers.OpEdit)
	if !strings.Contains(preview.Text, "останется <b>50 баллов</b>") {
		t.Fatalf("unexpected preview:\n%s", preview.Text)
	}
	if c := f.conversation(t, chatID); c.Stage != state.StageSelected || c.AwardID != 1 {
		t.Fatalf("unexpected state after select %+v", c)
	}

	f.handle(t, press(chatID, Callback{Scope: ScopeAwards, Menu: MenuConfirm, Page: 1, Award: 1}))
	c := f.conversation(t, chatID)
	if !c.AwaitingComment() || c.PromptMessageID != 55 {
		t.Fatalf("unexpected state after confirm %+v", c)
	}

	f.sender.Reset()
	f.handle(t, text(chatID, "на пятницу", 56))

	created := f.secondary.Session.ExecutesRepo.Created()
	if len(created) != 1 {
		t.Fatalf("expected one execute, got %d", len(created))
	}
	if created[0].Executing != 6 || created[0].Comment != "на пятницу" || created[0].TargetCount != 1 {
		t.Fatalf("unexpected execute %+v", created[0])
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected one notice, got %d", len(f.notifier.sent))
	}

	want := []string{testhelpers.OpDelete, testhelpers.OpSticker, testhelpers.OpEdit, testhelpers.OpSticker, testhelpers.OpSend}
	if got := f.sender.Ops(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	receipt, _ := f.sender.Last(testhelpers.OpEdit)
	if receipt.MessageID != 55 || !strings.Contains(receipt.Text, "<b>💳 Осталось:</b> 50 баллов") {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	if c := f.conversation(t, chatID); c.Stage != state.StageBrowsing || c.AwardID != 0 {
		t.Fatalf("redemption not finished: %+v", c)
	}
}

func TestCommentWaitsForCommit(t *testing.T) {
	f := newFixture(t)
	key := state.Key{ChatID: chatID, UserID: chatID}
	pending := state.Conversation{}
	pending.AwaitComment(1, 55)
	if err := f.states.Save(context.Background(), key, pending); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.secondary.Session.CommitErr = errors.New("commit rejected")

	if outcome := f.handler.Handle(context.Background(), text(chatID, "спасибо", 56)); outcome != gate.Failed {
		t.Fatalf("expected failed, got %v", outcome)
	}
	if len(f.notifier.sent) != 0 {
		t.Fatal("notice sent for an uncommitted redemption")
	}
	if _, ok := f.sender.Last(testhelpers.OpEdit); ok {
		t.Fatal("receipt shown for an uncommitted redemption")
	}
	if c := f.conversation(t, chatID); !c.AwaitingComment() {
		t.Fatalf("conversation changed by a failed interaction: %+v", c)
	}
}

func TestConfirmWithoutSelection(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(chatID, Callback{Scope: ScopeAwards, Menu: MenuConfirm, Page: 1, Award: 2}))

	answer, _ := f.sender.Last(testhelpers.OpAnswer)
	if answer.Text != textAwardUnavailable {
		t.Fatalf("unexpected alert %q", answer.Text)
	}
	if c := f.conversation(t, chatID); c.AwaitingComment() || c.AwardID != 0 {
		t.Fatalf("stale confirm advanced the conversation: %+v", c)
	}

	f.handle(t, text(chatID, "хочу", 56))
	if created := f.secondary.Session.ExecutesRepo.Created(); len(created) != 0 {
		t.Fatalf("execute created without a selection: %+v", created)
	}
}

func TestConfirmOtherAwardThanSelected(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(chatID, Callback{Scope: ScopeSelect, Page: 1, Award: 1}))
	f.handle(t, press(chatID, Callback{Scope: ScopeAwards, Menu: MenuConfirm, Page: 1, Award: 2}))

	if c := f.conversation(t, chatID); c.Stage != state.StageBrowsing || c.AwardID != 0 {
		t.Fatalf("expected browsing, got %+v", c)
	}
}

func TestConfirmRechecksBalance(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(chatID, Callback{Scope: ScopeSelect, Page: 1, Award: 1}))

	f.secondary.Session.ExecutesRepo.Sum = 80
	f.handle(t, press(chatID, Callback{Scope: ScopeAwards, Menu: MenuConfirm, Page: 1, Award: 1}))

	answer, _ := f.sender.Last(testhelpers.OpAnswer)
	if answer.Text != textAwardUnavailable {
		t.Fatalf("unexpected alert %q", answer.Text)
	}
	if c := f.conversation(t, chatID); c.Stage != state.StageBrowsing || c.AwaitingComment() {
		t.Fatalf("confirm advanced past a dropped balance: %+v", c)
	}
}

func TestCommentRechecksBalance(t *testing.T) {
	f := newFixture(t)
	pending := state.Conversation{}
	pending.AwaitComment(1, 55)
	_ = f.states.Save(context.Background(), state.Key{ChatID: chatID, UserID: chatID}, pending)
	f.secondary.Session.ExecutesRepo.Sum = 80

	f.handle(t, text(chatID, "спасибо", 56))

	if len(f.secondary.Session.ExecutesRepo.Created()) != 0 {
		t.Fatal("execute created above the balance")
	}
	msg, _ := f.sender.Last(testhelpers.OpSend)
	if msg.Text != textAwardUnavailable {
		t.Fatalf("unexpected reply %q", msg.Text)
	}
	if c := f.conversation(t, chatID); c.AwaitingComment() {
		t.Fatalf("redemption still pending: %+v", c)
	}
}

func TestCommentPrimaryCommitFailure(t *testing.T) {
	f := newFixture(t)
	key := state.Key{ChatID: chatID, UserID: chatID}
	pending := state.Conversation{}
	pending.AwaitComment(1, 55)
	if err := f.states.Save(context.Background(), key, pending); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.primary.Session.CommitErr = errors.New("primary commit rejected")

	if outcome := f.handler.Handle(context.Background(), text(chatID, "первый", 56)); outcome != gate.Failed {
		t.Fatalf("expected failed, got %v", outcome)
	}
	if f.secondary.Session.Commits() != 0 {
		t.Fatalf("redemption committed although the interaction failed")
	}
	if len(f.notifier.sent) != 0 {
		t.Fatal("notice sent for an uncommitted redemption")
	}

	f.primary.Session.CommitErr = nil
	f.handle(t, text(chatID, "второй", 57))
	if f.secondary.Session.Commits() != 1 || len(f.notifier.sent) != 1 {
		t.Fatalf("expected one committed redemption, got commits=%d notices=%d",
			f.secondary.Session.Commits(), len(f.notifier.sent))
	}
	if c := f.conversation(t, chatID); c.AwaitingComment() {
		t.Fatalf("redemption still pending: %+v", c)
	}
}

func TestCommentForVanishedAward(t *testing.T) {
	f := newFixture(t)
	pending := state.Conversation{}
	pending.AwaitComment(99, 55)
	_ = f.states.Save(context.Background(), state.Key{ChatID: chatID, UserID: chatID}, pending)

	f.handle(t, text(chatID, "спасибо", 56))

	msg, _ := f.sender.Last(testhelpers.OpSend)
	if msg.Text != textAwardUnavailable {
		t.Fatalf("unexpected reply %q", msg.Text)
	}
	if len(f.secondary.Session.ExecutesRepo.Created()) != 0 {
		t.Fatal("execute created for a missing award")
	}
	if c := f.conversation(t, chatID); c.AwaitingComment() {
		t.Fatalf("redemption still pending: %+v", c)
	}
}

func TestNavigationCancelsPendingComment(t *testing.T) {
	f := newFixture(t)
	pending := state.Conversation{}
	pending.AwaitComment(1, 55)
	_ = f.states.Save(context.Background(), state.Key{ChatID: chatID, UserID: chatID}, pending)

	f.handle(t, press(chatID, to(ScopeMain, MenuAwards)))
	if c := f.conversation(t, chatID); c.AwaitingComment() {
		t.Fatalf("expected the comment prompt to be dropped, got %+v", c)
	}
}

func TestNoopSkipsStores(t *testing.T) {
	f := newFixture(t)
	f.handle(t, Update{ChatID: chatID, UserID: chatID, CallbackID: "cb-2", Data: Noop})

	if f.primary.Begins() != 0 {
		t.Fatal("noop opened a session")
	}
	if ops := f.sender.Ops(); len(ops) != 1 || ops[0] != testhelpers.OpAnswer {
		t.Fatalf("unexpected calls %v", ops)
	}
}

func TestInvalidCallback(t *testing.T) {
	f := newFixture(t)
	outcome := f.handler.Handle(context.Background(), Update{ChatID: chatID, UserID: chatID, CallbackID: "cb-3", Data: "awards:all"})
	if outcome != gate.Failed {
		t.Fatalf("expected failed, got %v", outcome)
	}
	if ops := f.sender.Ops(); len(ops) != 1 || ops[0] != testhelpers.OpAnswer {
		t.Fatalf("unexpected calls %v", ops)
	}
}

func TestDatabaseNotice(t *testing.T) {
	f := newFixture(t)
	f.primary.BeginFn = func(context.Context, int) error {
		return &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	}

	if outcome := f.handler.Handle(context.Background(), command(chatID, CommandStart)); outcome != gate.Exhausted {
		t.Fatalf("expected exhausted, got %v", outcome)
	}
	if f.primary.Begins() != gate.DefaultAttempts {
		t.Fatalf("expected %d attempts, got %d", gate.DefaultAttempts, f.primary.Begins())
	}
	msg, _ := f.sender.Last(testhelpers.OpSend)
	if msg.Text != gate.Notice {
		t.Fatalf("expected database notice, got %q", msg.Text)
	}
}

func TestAdminSearch(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(adminID, to(ScopeAdmin, MenuSearch)))
	if c := f.conversation(t, adminID); !c.AwaitingSearch {
		t.Fatalf("expected search prompt state, got %+v", c)
	}

	f.handle(t, text(adminID, "Иван Петров", 60))
	msg, _ := f.sender.Last(testhelpers.OpSend)
	if !strings.HasPrefix(msg.Text, "Найдено несколько пользователей. Уточните запрос:") {
		t.Fatalf("unexpected result:\n%s", msg.Text)
	}
	if c := f.conversation(t, adminID); c.AwaitingSearch {
		t.Fatal("search prompt not cleared")
	}

	f.handle(t, press(adminID, to(ScopeAdmin, MenuSearch)))
	f.handle(t, text(adminID, "ivanov", 61))
	msg, _ = f.sender.Last(testhelpers.OpSend)
	if msg.Text != textInvalidSearch {
		t.Fatalf("unexpected reply %q", msg.Text)
	}
}

func TestAdminActionsDenied(t *testing.T) {
	f := newFixture(t)
	for _, cb := range []Callback{to(ScopeAdmin, MenuSearch), to(ScopeRole, "mip"), to(ScopeAdmin, MenuReset)} {
		f.sender.Reset()
		f.handle(t, press(chatID, cb))
		answer, _ := f.sender.Last(testhelpers.OpAnswer)
		if answer.Text != textAdminOnly {
			t.Fatalf("%s: unexpected alert %q", cb.Encode(), answer.Text)
		}
	}
	if c := f.conversation(t, chatID); c != (state.Conversation{}) {
		t.Fatalf("denied actions changed state: %+v", c)
	}
}

func TestRoleSwitchAndReset(t *testing.T) {
	f := newFixture(t)
	f.handle(t, press(adminID, to(ScopeRole, "gok")))

	if c := f.conversation(t, adminID); c.RoleOverride != model.RoleQuality {
		t.Fatalf("expected ГОК override, got %+v", c)
	}
	msg, _ := f.sender.Last(testhelpers.OpEdit)
	if !strings.Contains(msg.Text, "🎭 Текущая роль:</b> ГОК") || len(msg.Keyboard.InlineKeyboard) != 3 {
		t.Fatalf("expected overridden user menu, got %q", msg.Text)
	}

	f.handle(t, command(adminID, CommandStart))
	greeting, _ := f.sender.Last(testhelpers.OpSend)
	if strings.Contains(greeting.Text, "Твоя роль") {
		t.Fatal("overridden admin must see the user menu")
	}

	f.handle(t, command(adminID, CommandReset))
	if c := f.conversation(t, adminID); c != (state.Conversation{}) {
		t.Fatalf("expected cleared conversation, got %+v", c)
	}
	reset, _ := f.sender.Last(testhelpers.OpSend)
	if !strings.Contains(reset.Text, "🎭 Твоя роль:</b> root") {
		t.Fatalf("expected admin greeting, got %q", reset.Text)
	}
}

func TestExecutedAndCatalogPages(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		_, _ = f.secondary.Session.ExecutesRepo.Create(context.Background(), &model.Execute{ChatID: chatID, Name: "Мерч", Executing: 6})
	}

	f.handle(t, press(chatID, Callback{Scope: ScopeAwards, Menu: MenuExecuted, Page: 2}))
	msg, _ := f.sender.Last(testhelpers.OpEdit)
	if !strings.Contains(msg.Text, "Страница 2 из 2") || !strings.Contains(msg.Text, "6. <b>Мерч</b>") {
		t.Fatalf("unexpected executed page:\n%s", msg.Text)
	}

	f.handle(t, press(chatID, to(ScopeAwards, MenuAll)))
	msg, _ = f.sender.Last(testhelpers.OpEdit)
	if !strings.Contains(msg.Text, "3. <b>Перерыв</b>") || !strings.Contains(msg.Text, "🧮 Активаций: 2") {
		t.Fatalf("unexpected catalog:\n%s", msg.Text)
	}
}

func TestAccrualDetails(t *testing.T) {
	f := newFixture(t)
	f.secondary.Session.AccrualsRepo.Accruals = []model.Accrual{
		{ID: 1, Name: "Лучший месяц", Points: 50, Period: "Июль 2025"},
		{ID: 2, Name: "Спасибо", Points: 10, Date: "01.08.2025"},
	}
	f.handle(t, press(chatID, to(ScopeAch, MenuDetails)))

	msg, _ := f.sender.Last(testhelpers.OpEdit)
	if !strings.Contains(msg.Text, "📅 Июль 2025") || !strings.Contains(msg.Text, "📅 01.08.2025") {
		t.Fatalf("unexpected details:\n%s", msg.Text)
	}
}

func TestFromTelegramKinds(t *testing.T) {
	if got := (Update{CallbackID: "1", Text: "x"}).Kind(); got != KindCallback {
		t.Fatalf("expected callback, got %v", got)
	}
	if got := (Update{Command: "start", Text: "/start"}).Kind(); got != KindCommand {
		t.Fatalf("expected command, got %v", got)
	}
	if got := (Update{}).Kind(); got != KindOther {
		t.Fatalf("expected other, got %v", got)
	}
}
