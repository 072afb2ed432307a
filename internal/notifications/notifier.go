// Package notifications delivers new-contact-message alerts to the site owner.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"vitrine/internal/config"
	"vitrine/internal/models"
	"vitrine/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	// InboxChannel is the Redis channel new contact messages are announced on.
	InboxChannel = "contacts:new"

	telegramAPIBase = "https://api.telegram.org"
	telegramTimeout = 10 * time.Second
)

// Result reports per-channel delivery of one notification. Channels fail
// independently; a failure is logged and counted but never surfaces to the
// request that triggered the notification.
type Result struct {
	EmailSent    bool `json:"email_sent"`
	TelegramSent bool `json:"telegram_sent"`
}

// EmailSender sends a plain-text email. Abstracted for tests.
type EmailSender func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Notifier dispatches contact notifications over email and Telegram, and
// announces them on Redis for any listening admin dashboard.
type Notifier struct {
	cfg      *config.Config
	rdb      *redis.Client
	client   *http.Client
	sendMail EmailSender
	apiBase  string
	logger   *slog.Logger
}

// NewNotifier creates a Notifier using the configured channels. Either
// channel is skipped when its settings are absent.
func NewNotifier(cfg *config.Config, rdb *redis.Client) *Notifier {
	return &Notifier{
		cfg:      cfg,
		rdb:      rdb,
		client:   &http.Client{Timeout: telegramTimeout},
		sendMail: smtp.SendMail,
		apiBase:  telegramAPIBase,
		logger:   observability.GlobalLogger.Logger,
	}
}

// NotifyContactMessage pushes the message to every configured channel. It
// always returns a Result, never an error.
func (n *Notifier) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) Result {
	var result Result

	if n.cfg.SMTPHost != "" && n.cfg.NotifyEmail != "" {
		if err := n.sendEmail(msg); err != nil {
			observability.NotificationsSent.WithLabelValues("email", "error").Inc()
			n.logger.ErrorContext(ctx, "contact email notification failed",
				slog.Uint64("message_id", uint64(msg.ID)),
				slog.String("error", err.Error()),
			)
		} else {
			observability.NotificationsSent.WithLabelValues("email", "ok").Inc()
			result.EmailSent = true
		}
	}

	if n.cfg.TelegramBotToken != "" && n.cfg.TelegramChatID != "" {
		if err := n.sendTelegram(ctx, msg); err != nil {
			observability.NotificationsSent.WithLabelValues("telegram", "error").Inc()
			n.logger.ErrorContext(ctx, "contact telegram notification failed",
				slog.Uint64("message_id", uint64(msg.ID)),
				slog.String("error", err.Error()),
			)
		} else {
			observability.NotificationsSent.WithLabelValues("telegram", "ok").Inc()
			result.TelegramSent = true
		}
	}

	n.publishInbox(ctx, msg)

	return result
}

func (n *Notifier) sendEmail(msg *models.ContactMessage) error {
	addr := n.cfg.SMTPHost + ":" + n.cfg.SMTPPort

	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)
	}

	from := n.cfg.SMTPUser
	if from == "" {
		from = "noreply@" + n.cfg.SMTPHost
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", n.cfg.NotifyEmail)
	fmt.Fprintf(&b, "Subject: New contact message: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "From: %s <%s>\r\n\r\n%s\r\n", msg.Name, msg.Email, msg.Message)

	return n.sendMail(addr, auth, from, []string{n.cfg.NotifyEmail}, []byte(b.String()))
}

func (n *Notifier) sendTelegram(ctx context.Context, msg *models.ContactMessage) error {
	text := fmt.Sprintf("✉ New contact message\n\nFrom: %s <%s>\nSubject: %s\n\n%s",
		msg.Name, msg.Email, msg.Subject, msg.Message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.cfg.TelegramBotToken)
	form := url.Values{
		"chat_id": {n.cfg.TelegramChatID},
		"text":    {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}

// publishInbox announces the message on Redis. Best-effort; a nil client or
// publish error is ignored.
func (n *Notifier) publishInbox(ctx context.Context, msg *models.ContactMessage) {
	if n.rdb == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"id":      msg.ID,
		"name":    msg.Name,
		"subject": msg.Subject,
	})
	if err != nil {
		return
	}
	if err := n.rdb.Publish(ctx, InboxChannel, string(payload)).Err(); err != nil {
		n.logger.WarnContext(ctx, "inbox publish failed", slog.String("error", err.Error()))
	}
}
