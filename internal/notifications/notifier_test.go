package notifications

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	"vitrine/internal/config"
	"vitrine/internal/models"

	"github.com/stretchr/testify/assert"
)

func testMessage() *models.ContactMessage {
	return &models.ContactMessage{
		ID:      1,
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "I would like to talk about a project.",
	}
}

func TestNotifier_BothChannelsDisabled(t *testing.T) {
	n := NewNotifier(&config.Config{}, nil)

	result := n.NotifyContactMessage(context.Background(), testMessage())
	assert.False(t, result.EmailSent)
	assert.False(t, result.TelegramSent)
}

func TestNotifier_Telegram(t *testing.T) {
	t.Run("delivers to configured chat", func(t *testing.T) {
		var gotChatID, gotText string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			gotChatID = r.FormValue("chat_id")
			gotText = r.FormValue("text")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		n := NewNotifier(&config.Config{
			TelegramBotToken: "token",
			TelegramChatID:   "42",
		}, nil)
		n.apiBase = srv.URL

		result := n.NotifyContactMessage(context.Background(), testMessage())
		assert.True(t, result.TelegramSent)
		assert.False(t, result.EmailSent)
		assert.Equal(t, "42", gotChatID)
		assert.Contains(t, gotText, "Visitor")
		assert.Contains(t, gotText, "Hello")
	})

	t.Run("API error is swallowed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		n := NewNotifier(&config.Config{
			TelegramBotToken: "token",
			TelegramChatID:   "42",
		}, nil)
		n.apiBase = srv.URL

		result := n.NotifyContactMessage(context.Background(), testMessage())
		assert.False(t, result.TelegramSent)
	})
}

func TestNotifier_Email(t *testing.T) {
	t.Run("delivers through SMTP", func(t *testing.T) {
		var gotTo []string
		var gotBody string
		n := NewNotifier(&config.Config{
			SMTPHost:    "mail.example.com",
			SMTPPort:    "587",
			NotifyEmail: "owner@example.com",
		}, nil)
		n.sendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			gotTo = to
			gotBody = string(msg)
			return nil
		}

		result := n.NotifyContactMessage(context.Background(), testMessage())
		assert.True(t, result.EmailSent)
		assert.Equal(t, []string{"owner@example.com"}, gotTo)
		assert.Contains(t, gotBody, "Subject: New contact message: Hello")
		assert.Contains(t, gotBody, "visitor@example.com")
	})

	t.Run("SMTP error is swallowed", func(t *testing.T) {
		n := NewNotifier(&config.Config{
			SMTPHost:    "mail.example.com",
			SMTPPort:    "587",
			NotifyEmail: "owner@example.com",
		}, nil)
		n.sendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			return errors.New("connection refused")
		}

		result := n.NotifyContactMessage(context.Background(), testMessage())
		assert.False(t, result.EmailSent)
	})
}

func TestNotifier_ChannelsFailIndependently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(&config.Config{
		SMTPHost:         "mail.example.com",
		SMTPPort:         "587",
		NotifyEmail:      "owner@example.com",
		TelegramBotToken: "token",
		TelegramChatID:   "42",
	}, nil)
	n.apiBase = srv.URL
	n.sendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("smtp down")
	}

	result := n.NotifyContactMessage(context.Background(), testMessage())
	assert.False(t, result.EmailSent)
	assert.True(t, result.TelegramSent)
}
