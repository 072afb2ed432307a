// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"vitrine/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumPosts    int
	NumProjects int
	ShouldClean bool
}

// AdminPassword is the password every seeded staff account gets.
const AdminPassword = "password123"

var (
	categoryNames = []string{"Engineering", "Career", "Open Source", "Travel Notes", "Tooling"}

	tagNames = []string{"go", "python", "django", "postgres", "redis", "docker", "linux", "testing", "performance", "devops"}

	technologyNames = []string{"Go", "Python", "Django", "PostgreSQL", "Redis", "Docker", "React", "TypeScript", "Kubernetes", "Terraform"}

	skillsByCategory = map[models.SkillCategory][]string{
		models.SkillBackend:  {"Go", "Python", "REST API design"},
		models.SkillFrontend: {"React", "TypeScript", "CSS"},
		models.SkillDatabase: {"PostgreSQL", "Redis"},
		models.SkillDevOps:   {"Docker", "CI/CD", "Kubernetes"},
		models.SkillOther:    {"Git", "Linux", "Technical writing"},
	}
)

// Seeder populates the database with demo content.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes seedable content. Staff users are kept.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Event{}, &models.PageView{}, &models.VisitorSession{}, &models.Visitor{},
		&models.ContactMessage{}, &models.Subscription{}, &models.Comment{},
		&models.Post{}, &models.Project{},
		&models.Skill{}, &models.Technology{}, &models.ProjectCategory{},
		&models.Tag{}, &models.Category{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the staff account used to manage content, if missing.
func (s *Seeder) EnsureAdmin() (*models.User, error) {
	var existing models.User
	err := s.db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.User{
		Username:  "admin",
		Email:     "admin@example.com",
		Password:  string(hash),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		IsStaff:   true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// SeedTaxonomies creates the blog and portfolio classification entries.
func (s *Seeder) SeedTaxonomies() ([]models.Category, []models.Tag, []models.Technology, error) {
	categories := make([]models.Category, 0, len(categoryNames))
	for i, name := range categoryNames {
		category := models.Category{
			Slug:     slug.Make(name),
			Name:     models.Text(name),
			Position: uint(i),
			IsActive: true,
		}
		if err := s.db.Create(&category).Error; err != nil {
			return nil, nil, nil, err
		}
		categories = append(categories, category)
	}

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := models.Tag{
			Slug:     slug.Make(name),
			Name:     models.Text(name),
			IsActive: true,
		}
		if err := s.db.Create(&tag).Error; err != nil {
			return nil, nil, nil, err
		}
		tags = append(tags, tag)
	}

	projectCategory := models.ProjectCategory{
		Slug:     "web-applications",
		Name:     models.Text("Web Applications"),
		IsActive: true,
	}
	if err := s.db.Create(&projectCategory).Error; err != nil {
		return nil, nil, nil, err
	}

	technologies := make([]models.Technology, 0, len(technologyNames))
	for _, name := range technologyNames {
		technology := models.Technology{
			Slug:     slug.Make(name),
			Name:     name,
			IsActive: true,
		}
		if err := s.db.Create(&technology).Error; err != nil {
			return nil, nil, nil, err
		}
		technologies = append(technologies, technology)
	}

	position := uint(0)
	for category, names := range skillsByCategory {
		for _, name := range names {
			skill := models.Skill{
				Slug:     slug.Make(string(category) + "-" + name),
				Name:     models.Text(name),
				Category: category,
				Level:    uint8(gofakeit.Number(50, 100)),
				Position: position,
				IsActive: true,
			}
			if err := s.db.Create(&skill).Error; err != nil {
				return nil, nil, nil, err
			}
			position++
		}
	}

	return categories, tags, technologies, nil
}

// SeedPosts creates published and draft posts with comments.
func (s *Seeder) SeedPosts(author *models.User, categories []models.Category, tags []models.Tag, count int) error {
	for i := 0; i < count; i++ {
		title := strings.TrimSuffix(gofakeit.Sentence(5), ".")
		content := gofakeit.Paragraph(4, 5, 12, "\n\n")

		post := models.Post{
			Slug:     fmt.Sprintf("%s-%d", slug.Make(title), i+1),
			AuthorID: author.ID,
			Title:    models.Text(title),
			Excerpt:  models.Text(gofakeit.Sentence(12)),
			Content:  models.Text(content),
			Publishable: models.Publishable{
				Status: models.StatusPublished,
			},
			Viewable:      models.Viewable{ViewsCount: uint(gofakeit.Number(0, 2000))},
			ReadTime:      uint(1 + len(strings.Fields(content))/200),
			AllowComments: true,
			IsActive:      true,
		}
		// Every fifth post stays a draft.
		if i%5 == 4 {
			post.Status = models.StatusDraft
		}
		post.Categories = []models.Category{categories[rand.Intn(len(categories))]}
		post.Tags = []models.Tag{tags[rand.Intn(len(tags))], tags[rand.Intn(len(tags))]}

		if err := s.db.Create(&post).Error; err != nil {
			return err
		}

		for c := 0; c < gofakeit.Number(0, 4); c++ {
			comment := models.Comment{
				PostID:      post.ID,
				AuthorName:  gofakeit.Name(),
				AuthorEmail: gofakeit.Email(),
				Content:     gofakeit.Sentence(15),
				IsApproved:  gofakeit.Bool(),
				IsActive:    true,
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedProjects creates portfolio projects wired to technologies.
func (s *Seeder) SeedProjects(technologies []models.Technology, count int) error {
	for i := 0; i < count; i++ {
		title := strings.TrimSuffix(gofakeit.Sentence(3), ".")
		start := gofakeit.DateRange(time.Now().AddDate(-3, 0, 0), time.Now().AddDate(0, -2, 0))

		project := models.Project{
			Slug:        fmt.Sprintf("%s-%d", slug.Make(title), i+1),
			Title:       models.Text(title),
			Description: models.Text(gofakeit.Sentence(14)),
			Content:     models.Text(gofakeit.Paragraph(3, 4, 10, "\n\n")),
			Publishable: models.Publishable{Status: models.StatusPublished},
			Featured: models.Featured{
				IsFeatured:    i < 3,
				FeaturedOrder: uint(i),
			},
			GithubURL: fmt.Sprintf("https://github.com/example/%s", slug.Make(title)),
			StartDate: &start,
			IsOngoing: i%4 == 0,
			Position:  uint(i),
			IsActive:  true,
		}
		if !project.IsOngoing {
			end := gofakeit.DateRange(start, time.Now())
			project.EndDate = &end
		}
		project.Technologies = []models.Technology{
			technologies[rand.Intn(len(technologies))],
			technologies[rand.Intn(len(technologies))],
		}

		if err := s.db.Create(&project).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedEngagement creates subscriptions and contact messages.
func (s *Seeder) SeedEngagement() error {
	for i := 0; i < 10; i++ {
		subscription := models.Subscription{
			Email:    gofakeit.Email(),
			Name:     gofakeit.Name(),
			Language: models.SupportedLanguages[rand.Intn(len(models.SupportedLanguages))],
			IsActive: true,
			Token:    gofakeit.UUID(),
		}
		if err := s.db.Create(&subscription).Error; err != nil {
			return err
		}
	}

	for i := 0; i < 5; i++ {
		message := models.ContactMessage{
			Name:    gofakeit.Name(),
			Email:   gofakeit.Email(),
			Subject: strings.TrimSuffix(gofakeit.Sentence(4), "."),
			Message: gofakeit.Paragraph(1, 3, 10, "\n"),
			Status:  models.ContactNew,
		}
		if err := s.db.Create(&message).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run performs a full seed pass.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d posts and %d projects...", opts.NumPosts, opts.NumProjects)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	admin, err := s.EnsureAdmin()
	if err != nil {
		return fmt.Errorf("admin creation failed: %w", err)
	}

	categories, tags, technologies, err := s.SeedTaxonomies()
	if err != nil {
		return fmt.Errorf("taxonomy seeding failed: %w", err)
	}

	if err := s.SeedPosts(admin, categories, tags, opts.NumPosts); err != nil {
		return fmt.Errorf("post seeding failed: %w", err)
	}
	if err := s.SeedProjects(technologies, opts.NumProjects); err != nil {
		return fmt.Errorf("project seeding failed: %w", err)
	}
	if err := s.SeedEngagement(); err != nil {
		return fmt.Errorf("engagement seeding failed: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}
