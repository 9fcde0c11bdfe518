package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
)

// Subject of every redemption notice.
const Subject = "Использование награды"

// ErrNoRecipients is returned by Send when the recipient list is empty.
var ErrNoRecipients = errors.New("no recipients")

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Options describe the SMTP account and the routing switches.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string
	// UseSSL selects implicit TLS; otherwise STARTTLS is required.
	UseSSL bool

	DivisionAddr     string
	NotifySupervisor bool
}

// Mailer sends redemption notices over authenticated SMTP.
type Mailer struct {
	from             string
	client           sender
	divisionAddr     string
	notifySupervisor bool
	logger           *slog.Logger
	metrics          *metrics.Metrics
}

// New dials nothing yet; a connection is opened per message.
func New(opts Options, logger *slog.Logger, m *metrics.Metrics) (*Mailer, error) {
	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(opts.User),
		mail.WithPassword(opts.Password),
		mail.WithTimeout(15 * time.Second),
	}
	if opts.UseSSL {
		clientOpts = append(clientOpts, mail.WithSSL())
	} else {
		clientOpts = append(clientOpts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return newMailer(opts, client, logger, m), nil
}

func newMailer(opts Options, client sender, logger *slog.Logger, m *metrics.Metrics) *Mailer {
	return &Mailer{
		from:             opts.User,
		client:           client,
		divisionAddr:     opts.DivisionAddr,
		notifySupervisor: opts.NotifySupervisor,
		logger:           logger,
		metrics:          m,
	}
}

// Send delivers one message to all of to.
func (m *Mailer) Send(ctx context.Context, to []string, subject, body string, isHTML bool) error {
	if len(to) == 0 {
		return ErrNoRecipients
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(subject)

	contentType := mail.TypeTextPlain
	if isHTML {
		contentType = mail.TypeTextHTML
	}
	msg.SetBodyString(contentType, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}

// NotifyRedemption tells the responsible people that r waits for activation.
func (m *Mailer) NotifyRedemption(ctx context.Context, r model.Redemption) error {
	to := Recipients(r, m.divisionAddr, m.notifySupervisor)
	logger := m.logger.With(slog.Int64("chat_id", r.User.ChatID), slog.Any("recipients", to))

	if len(to) == 0 {
		logger.Warn("redemption notice has no recipients")
		return nil
	}

	err := m.Send(ctx, to, Subject, Body(r), true)
	m.metrics.ObserveNotification(err)
	if err != nil {
		logger.Error("email send failed", slog.String("error", err.Error()))
		return fmt.Errorf("send redemption notice: %w", err)
	}
	logger.Info("email sent")
	return nil
}

// Body renders the HTML notice.
func Body(r model.Redemption) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Добрый день<br>\n<b>%s</b> просит активировать награду <b>%s</b><br>\nОписание: <b>%s</b><br>",
		html.EscapeString(r.User.FullName),
		html.EscapeString(r.Award.Name),
		html.EscapeString(r.Award.Description),
	)
	if r.Execute != nil && r.Execute.Comment != "" {
		fmt.Fprintf(&b, "<br>Комментарий: <b>%s</b>", html.EscapeString(r.Execute.Comment))
	}
	return b.String()
}

// Recipients resolves who receives the notice of r. Divisional redemptions go to the
// division mailbox; the user and, when enabled, the supervisor get a copy.
func Recipients(r model.Redemption, divisionAddr string, notifySupervisor bool) []string {
	var to []string
	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		for _, existing := range to {
			if strings.EqualFold(existing, addr) {
				return
			}
		}
		to = append(to, addr)
	}

	if r.Execute != nil && model.ResponsibleParty(r.Execute.Executing, r.User).IsDivisional() {
		add(divisionAddr)
	}
	if r.User != nil && r.User.HasEmail() {
		add(r.User.Email)
	}
	if notifySupervisor && r.Supervisor != nil && r.Supervisor.HasEmail() {
		add(r.Supervisor.Email)
	}
	return to
}
