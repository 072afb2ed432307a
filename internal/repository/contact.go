package repository

import (
	"context"
	"time"

	"vitrine/internal/models"

	"gorm.io/gorm"
)

// ContactListOptions narrows the staff inbox listing.
type ContactListOptions struct {
	Status models.ContactStatus
	Unread *bool
	Limit  int
	Offset int
}

// ContactRepository defines the interface for contact message data operations
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, opts ContactListOptions) ([]*models.ContactMessage, int64, error)
	MarkRead(ctx context.Context, id uint) error
	UpdateStatus(ctx context.Context, id uint, status models.ContactStatus) error
	CountUnread(ctx context.Context) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) List(ctx context.Context, opts ContactListOptions) ([]*models.ContactMessage, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if opts.Status != "" {
		base = base.Where("status = ?", opts.Status)
	}
	if opts.Unread != nil {
		base = base.Where("is_read = ?", !*opts.Unread)
	}

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var messages []*models.ContactMessage
	err := base.
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, count, nil
}

// MarkRead sets is_read and stamps read_at once. Re-reading an already read
// message keeps the original timestamp.
func (r *contactRepository) MarkRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either already read or missing; distinguish for the caller.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id uint, status models.ContactStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
