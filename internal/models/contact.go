package models

import "time"

// ContactStatus tracks handling of an inbox message, independent of is_read.
type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in_progress"
	ContactReplied    ContactStatus = "replied"
	ContactClosed     ContactStatus = "closed"
	ContactSpam       ContactStatus = "spam"
)

// Valid reports whether s is a known contact message status.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactInProgress, ContactReplied, ContactClosed, ContactSpam:
		return true
	}
	return false
}

// ContactMessage is a submission from the public contact form. The request
// payload fields are immutable once stored; only Status and the read flags
// change afterwards.
type ContactMessage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:254;not null" json:"email"`
	Subject string `gorm:"size:200;not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status ContactStatus `gorm:"type:varchar(20);default:'new';index" json:"status"`
	IsRead bool          `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time    `json:"read_at"`

	IPAddress string `gorm:"size:45" json:"-"`
	UserAgent string `gorm:"size:500" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
