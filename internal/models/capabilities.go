package models

import (
	"time"

	"gorm.io/gorm"
)

// PublicationStatus is the lifecycle state of publishable content.
type PublicationStatus string

const (
	StatusDraft     PublicationStatus = "draft"
	StatusPublished PublicationStatus = "published"
	StatusArchived  PublicationStatus = "archived"
)

// Valid reports whether s is one of the known publication states.
func (s PublicationStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Publishable gates visibility behind an explicit status and records the
// first publication time. Transitions between states are unconstrained.
type Publishable struct {
	Status      PublicationStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	PublishedAt *time.Time        `json:"published_at"`
}

// BeforeSave stamps PublishedAt the first time the entity enters the
// published state. The timestamp is never cleared or overwritten afterwards,
// even if status later cycles back through draft or archived.
func (p *Publishable) BeforeSave(tx *gorm.DB) error {
	if p.Status == StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	return nil
}

// IsPublished reports whether the entity is publicly visible.
func (p *Publishable) IsPublished() bool {
	return p.Status == StatusPublished
}

// Viewable carries a raw hit counter. Increments go through the repository
// as an atomic SQL update, never read-modify-write in application code.
type Viewable struct {
	ViewsCount uint `gorm:"default:0" json:"views_count"`
}

// Featured marks content for promoted placement.
type Featured struct {
	IsFeatured    bool `gorm:"default:false;index" json:"is_featured"`
	FeaturedOrder uint `gorm:"default:0" json:"featured_order"`
}

// SEO holds per-entity meta tags for detail pages.
type SEO struct {
	MetaTitle       string `gorm:"size:60" json:"meta_title"`
	MetaDescription string `gorm:"size:160" json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}
