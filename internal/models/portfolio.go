package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectCategory groups portfolio projects.
type ProjectCategory struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Slug        string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name        LocalizedText `gorm:"not null" json:"name"`
	Description LocalizedText `json:"description"`
	Icon        string        `gorm:"size:50" json:"icon"`
	Color       string        `gorm:"size:20" json:"color"`
	Position    uint          `gorm:"default:0" json:"position"`
	IsActive    bool          `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Technology is a tool or framework referenced by projects. Its name is not
// localized; descriptions are.
type Technology struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Slug        string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name        string        `gorm:"size:100;not null" json:"name"`
	Description LocalizedText `json:"description"`
	Icon        string        `gorm:"size:50" json:"icon"`
	Logo        string        `json:"logo"`
	Color       string        `gorm:"size:20" json:"color"`
	Website     string        `json:"website"`
	Version     string        `gorm:"size:20" json:"version"`
	Position    uint          `gorm:"default:0" json:"position"`
	IsActive    bool          `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Project is a portfolio entry. Same visibility rules as Post.
type Project struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Slug        string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title       LocalizedText `gorm:"not null" json:"title"`
	Subtitle    LocalizedText `json:"subtitle"`
	Description LocalizedText `gorm:"not null" json:"description"`
	Content     LocalizedText `json:"content"`

	Publishable
	Viewable
	Featured
	SEO

	Thumbnail  string `json:"thumbnail"`
	CoverImage string `json:"cover_image"`

	Categories   []ProjectCategory `gorm:"many2many:project_categories_m2m" json:"categories"`
	Technologies []Technology      `gorm:"many2many:project_technologies" json:"technologies"`

	ClientName    string     `gorm:"size:100" json:"client_name"`
	ClientWebsite string     `json:"client_website"`
	ProjectURL    string     `json:"project_url"`
	GithubURL     string     `json:"github_url"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	IsOngoing     bool       `gorm:"default:false" json:"is_ongoing"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	Position      uint       `gorm:"default:0" json:"position"`

	ContentHTML string `gorm:"-" json:"content_html,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SkillCategory enumerates the groupings a skill can belong to.
type SkillCategory string

const (
	SkillFrontend SkillCategory = "frontend"
	SkillBackend  SkillCategory = "backend"
	SkillDatabase SkillCategory = "database"
	SkillDevOps   SkillCategory = "devops"
	SkillDesign   SkillCategory = "design"
	SkillSoft     SkillCategory = "soft"
	SkillOther    SkillCategory = "other"
)

// Valid reports whether c is a known skill category.
func (c SkillCategory) Valid() bool {
	switch c {
	case SkillFrontend, SkillBackend, SkillDatabase, SkillDevOps, SkillDesign, SkillSoft, SkillOther:
		return true
	}
	return false
}

// Skill is a proficiency entry on the resume page.
type Skill struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Slug            string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name            LocalizedText `gorm:"not null" json:"name"`
	Description     LocalizedText `json:"description"`
	Icon            string        `gorm:"size:50" json:"icon"`
	Level           uint8         `gorm:"default:0" json:"level"`
	Category        SkillCategory `gorm:"type:varchar(50);default:'other';index" json:"category"`
	YearsExperience uint8         `gorm:"default:0" json:"years_experience"`
	Position        uint          `gorm:"default:0" json:"position"`
	IsActive        bool          `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
