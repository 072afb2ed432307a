package service

import (
	"context"
	"errors"
	"strings"

	"vitrine/internal/models"
	"vitrine/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService handles newsletter signups.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
}

// SubscribeInput is a public newsletter signup request.
type SubscribeInput struct {
	Email     string
	Name      string
	Language  string
	IPAddress string
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo}
}

// Subscribe registers an email address. A duplicate email is rejected as a
// resource conflict regardless of the existing record's active state.
func (s *SubscriptionService) Subscribe(ctx context.Context, in SubscribeInput) (*models.Subscription, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, models.NewValidationError("A valid email address is required")
	}

	language := in.Language
	if language == "" || !models.IsSupportedLanguage(language) {
		language = models.DefaultLanguage
	}

	exists, err := s.subscriptionRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewDuplicateError("This email is already subscribed")
	}

	subscription := &models.Subscription{
		Email:     email,
		Name:      in.Name,
		Language:  language,
		IsActive:  true,
		Token:     uuid.NewString(),
		IPAddress: in.IPAddress,
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		// A concurrent subscribe can slip past the existence check and
		// hit the unique email index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewDuplicateError("This email is already subscribed")
		}
		return nil, err
	}
	return subscription, nil
}

// Unsubscribe deactivates an existing subscription.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.subscriptionRepo.Deactivate(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Subscription", email)
		}
		return err
	}
	return nil
}

// ListSubscriptions returns all subscriptions for the staff dashboard.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, int64, error) {
	return s.subscriptionRepo.List(ctx, limit, offset)
}
