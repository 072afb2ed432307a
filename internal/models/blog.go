package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups blog posts. Categories may nest one level via Parent.
type Category struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Slug        string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name        LocalizedText `gorm:"not null" json:"name"`
	Description LocalizedText `json:"description"`
	Icon        string        `gorm:"size:50" json:"icon"`
	Color       string        `gorm:"size:20" json:"color"`
	ParentID    *uint         `json:"parent_id"`
	Position    uint          `gorm:"default:0" json:"position"`
	IsActive    bool          `gorm:"default:true" json:"is_active"`
	// PostsCount is not persisted; computed at query time
	PostsCount int64          `gorm:"-" json:"posts_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Tag labels blog posts.
type Tag struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Slug        string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name        LocalizedText `gorm:"not null" json:"name"`
	Description LocalizedText `json:"description"`
	Color       string        `gorm:"size:20" json:"color"`
	IsActive    bool          `gorm:"default:true" json:"is_active"`
	PostsCount  int64         `gorm:"-" json:"posts_count"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Post is a blog article. Visibility in public endpoints requires
// status=published and is_active=true, enforced at the repository boundary.
type Post struct {
	ID       uint          `gorm:"primaryKey" json:"id"`
	Slug     string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	AuthorID uint          `gorm:"not null;index" json:"author_id"`
	Author   User          `gorm:"foreignKey:AuthorID" json:"author"`
	Title    LocalizedText `gorm:"not null" json:"title"`
	Subtitle LocalizedText `json:"subtitle"`
	Excerpt  LocalizedText `json:"excerpt"`
	Content  LocalizedText `gorm:"not null" json:"content"`

	Publishable
	Viewable
	Featured
	SEO

	Thumbnail  string     `json:"thumbnail"`
	CoverImage string     `json:"cover_image"`
	Categories []Category `gorm:"many2many:post_categories" json:"categories"`
	Tags       []Tag      `gorm:"many2many:post_tags" json:"tags"`

	// ReadTime is minutes of estimated reading, derived from content length.
	ReadTime      uint `gorm:"default:0" json:"read_time"`
	AllowComments bool `gorm:"default:true" json:"allow_comments"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	// ContentHTML is rendered from the requested language's markdown on detail reads.
	ContentHTML string `gorm:"-" json:"content_html,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Comment is visitor feedback on a post. It is created unapproved and only
// surfaced after explicit moderation; an unapproved or inactive comment
// hides its entire reply subtree.
type Comment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PostID        uint   `gorm:"not null;index" json:"post_id"`
	ParentID      *uint  `gorm:"index" json:"parent_id"`
	AuthorName    string `gorm:"size:100;not null" json:"author_name"`
	AuthorEmail   string `gorm:"size:254;not null" json:"author_email"`
	AuthorWebsite string `json:"author_website,omitempty"`
	Content       string `gorm:"type:text;not null" json:"content"`
	IsApproved    bool   `gorm:"default:false" json:"-"`
	IsActive      bool   `gorm:"default:true" json:"-"`
	IPAddress     string `gorm:"size:45" json:"-"`
	UserAgent     string `gorm:"size:500" json:"-"`

	Replies []*Comment `gorm:"-" json:"replies"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Subscription is a blog newsletter signup. The confirmation token is stored
// but no issuance/verification flow exists yet.
type Subscription struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"size:100" json:"name"`
	Language    string     `gorm:"size:10;default:'en'" json:"language"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	ConfirmedAt *time.Time `json:"-"`
	Token       string     `gorm:"size:100" json:"-"`
	IPAddress   string     `gorm:"size:45" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}
