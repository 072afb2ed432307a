package repository

import (
	"context"

	"vitrine/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for newsletter subscription data operations
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.Subscription, error)
	List(ctx context.Context, limit, offset int) ([]*models.Subscription, int64, error)
	Deactivate(ctx context.Context, email string) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *subscriptionRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) GetByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) List(ctx context.Context, limit, offset int) ([]*models.Subscription, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var subscriptions []*models.Subscription
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subscriptions).Error
	if err != nil {
		return nil, 0, err
	}
	return subscriptions, count, nil
}

func (r *subscriptionRepository) Deactivate(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("email = ?", email).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
