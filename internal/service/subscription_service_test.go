package service

import (
	"context"
	"errors"
	"testing"

	"vitrine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSubscriptionRepo struct {
	exists    bool
	createErr error
	created   *models.Subscription
}

func (r *stubSubscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	r.created = subscription
	return r.createErr
}

func (r *stubSubscriptionRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists, nil
}

func (r *stubSubscriptionRepo) GetByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSubscriptionRepo) List(ctx context.Context, limit, offset int) ([]*models.Subscription, int64, error) {
	return nil, 0, nil
}

func (r *stubSubscriptionRepo) Deactivate(ctx context.Context, email string) error {
	return nil
}

func TestSubscribe(t *testing.T) {
	t.Run("normalizes email and language", func(t *testing.T) {
		repo := &stubSubscriptionRepo{}
		svc := NewSubscriptionService(repo)

		sub, err := svc.Subscribe(context.Background(), SubscribeInput{
			Email:    "  Reader@Example.COM ",
			Language: "klingon",
		})
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", sub.Email)
		assert.Equal(t, models.DefaultLanguage, sub.Language)
		assert.True(t, sub.IsActive)
		assert.NotEmpty(t, sub.Token)
	})

	t.Run("known email is a conflict", func(t *testing.T) {
		repo := &stubSubscriptionRepo{exists: true}
		svc := NewSubscriptionService(repo)

		_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "reader@example.com"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_RESOURCE", appErr.Code)
	})

	t.Run("unique index race maps to a conflict", func(t *testing.T) {
		// Two concurrent subscribes can both pass the existence check; the
		// loser's insert hits the unique email index instead.
		repo := &stubSubscriptionRepo{createErr: gorm.ErrDuplicatedKey}
		svc := NewSubscriptionService(repo)

		_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "reader@example.com"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_RESOURCE", appErr.Code)
	})

	t.Run("unrelated insert errors pass through", func(t *testing.T) {
		repo := &stubSubscriptionRepo{createErr: errors.New("connection reset")}
		svc := NewSubscriptionService(repo)

		_, err := svc.Subscribe(context.Background(), SubscribeInput{Email: "reader@example.com"})
		require.Error(t, err)
		var appErr *models.AppError
		assert.False(t, errors.As(err, &appErr))
	})
}
