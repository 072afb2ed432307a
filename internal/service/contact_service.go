package service

import (
	"context"
	"errors"
	"strings"

	"vitrine/internal/models"
	"vitrine/internal/notifications"
	"vitrine/internal/repository"

	"gorm.io/gorm"
)

// ContactService handles the public contact form and the staff inbox.
type ContactService struct {
	contactRepo repository.ContactRepository
	notifier    *notifications.Notifier
}

// SubmitContactInput is a public contact form submission.
type SubmitContactInput struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	IPAddress string
	UserAgent string
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository, notifier *notifications.Notifier) *ContactService {
	return &ContactService{contactRepo: contactRepo, notifier: notifier}
}

// SubmitMessage stores the message and dispatches owner notifications. A
// notification channel failure never fails the submission.
func (s *ContactService) SubmitMessage(ctx context.Context, in SubmitContactInput) (*models.ContactMessage, notifications.Result, error) {
	var result notifications.Result

	if in.Name == "" {
		return nil, result, models.NewValidationError("Name is required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, result, models.NewValidationError("A valid email address is required")
	}
	if in.Subject == "" {
		return nil, result, models.NewValidationError("Subject is required")
	}
	if in.Message == "" {
		return nil, result, models.NewValidationError("Message is required")
	}

	userAgent := in.UserAgent
	if len(userAgent) > maxUserAgentLen {
		userAgent = userAgent[:maxUserAgentLen]
	}

	message := &models.ContactMessage{
		Name:      in.Name,
		Email:     email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    models.ContactNew,
		IPAddress: in.IPAddress,
		UserAgent: userAgent,
	}
	if err := s.contactRepo.Create(ctx, message); err != nil {
		return nil, result, err
	}

	if s.notifier != nil {
		result = s.notifier.NotifyContactMessage(ctx, message)
	}

	return message, result, nil
}

// ListMessages returns inbox messages matching the filter.
func (s *ContactService) ListMessages(ctx context.Context, opts repository.ContactListOptions) ([]*models.ContactMessage, int64, error) {
	return s.contactRepo.List(ctx, opts)
}

// GetMessage returns one inbox message and marks it read.
func (s *ContactService) GetMessage(ctx context.Context, id uint) (*models.ContactMessage, error) {
	if err := s.contactRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Contact message", id)
		}
		return nil, err
	}
	return s.contactRepo.GetByID(ctx, id)
}

// UpdateMessageStatus moves a message through the handling workflow.
func (s *ContactService) UpdateMessageStatus(ctx context.Context, id uint, status models.ContactStatus) (*models.ContactMessage, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("Status must be one of new, in_progress, replied, closed, spam")
	}
	if err := s.contactRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Contact message", id)
		}
		return nil, err
	}
	return s.contactRepo.GetByID(ctx, id)
}

// CountUnread returns the unread inbox badge count.
func (s *ContactService) CountUnread(ctx context.Context) (int64, error) {
	return s.contactRepo.CountUnread(ctx)
}
