package models

import (
	"time"

	"gorm.io/datatypes"
)

// Visitor is the only mutable analytics aggregate: repeat identification by
// the opaque visitor id bumps VisitsCount and LastVisitAt atomically.
type Visitor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VisitorID    string    `gorm:"size:100;uniqueIndex;not null" json:"visitor_id"`
	FirstVisitAt time.Time `gorm:"autoCreateTime" json:"first_visit_at"`
	LastVisitAt  time.Time `json:"last_visit_at"`
	VisitsCount  uint      `gorm:"default:1" json:"visits_count"`
	IPAddress    string    `gorm:"size:45" json:"-"`
	UserAgent    string    `gorm:"size:500" json:"-"`
	Language     string    `gorm:"size:10" json:"language"`
	Referrer     string    `json:"referrer"`
	IsBot        bool      `gorm:"default:false;index" json:"is_bot"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// VisitorSession is one browsing session of a visitor.
type VisitorSession struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	VisitorID   uint       `gorm:"not null;index" json:"-"`
	Visitor     Visitor    `gorm:"foreignKey:VisitorID" json:"-"`
	SessionID   string     `gorm:"size:100;uniqueIndex;not null" json:"session_id"`
	StartTime   time.Time  `gorm:"autoCreateTime" json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Duration    uint       `gorm:"default:0" json:"duration"`
	IPAddress   string     `gorm:"size:45" json:"-"`
	UserAgent   string     `gorm:"size:500" json:"-"`
	EntryPage   string     `gorm:"size:255" json:"entry_page"`
	ExitPage    string     `gorm:"size:255" json:"exit_page"`
	PagesViewed uint       `gorm:"default:0" json:"pages_viewed"`
	Referrer    string     `json:"referrer"`
	IsBounce    bool       `gorm:"default:true" json:"is_bounce"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}

// PageView is an append-only page hit record.
type PageView struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Path        string         `gorm:"size:255;default:'/';index" json:"path"`
	QueryParams datatypes.JSON `json:"query_params"`
	IPAddress   string         `gorm:"size:45" json:"-"`
	UserAgent   string         `gorm:"size:500" json:"-"`
	Referrer    string         `json:"referrer"`
	Language    string         `gorm:"size:10" json:"language"`
	SessionID   string         `gorm:"size:100;index" json:"session_id"`
	VisitorID   string         `gorm:"size:100;index" json:"visitor_id"`
	Duration    uint           `gorm:"default:0" json:"duration"`
	IsBot       bool           `gorm:"default:false" json:"is_bot"`
	IsMobile    bool           `gorm:"default:false" json:"is_mobile"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Event is an append-only custom interaction record with a free-form payload.
type Event struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null;index" json:"name"`
	Category  string         `gorm:"size:100;index" json:"category"`
	Data      datatypes.JSON `json:"data"`
	IPAddress string         `gorm:"size:45" json:"-"`
	UserAgent string         `gorm:"size:500" json:"-"`
	SessionID string         `gorm:"size:100;index" json:"session_id"`
	VisitorID string         `gorm:"size:100;index" json:"visitor_id"`
	Path      string         `gorm:"size:255" json:"path"`
	CreatedAt time.Time      `json:"created_at"`
}
