package repository

import (
	"context"

	"vitrine/internal/models"

	"gorm.io/gorm"
)

// ProjectListOptions narrows and orders public project listings.
type ProjectListOptions struct {
	CategorySlug   string
	TechnologySlug string
	Featured       *bool
	Ongoing        *bool
	Search         string
	Ordering       string
	Limit          int
	Offset         int
}

// ProjectRepository defines the interface for portfolio project data operations
type ProjectRepository interface {
	ListPublished(ctx context.Context, opts ProjectListOptions) ([]*models.Project, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Project, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Project, error)
	IncrementViews(ctx context.Context, id uint) error
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Project, int64, error)
	Update(ctx context.Context, project *models.Project) error
	ReplaceCategories(ctx context.Context, project *models.Project, categories []models.ProjectCategory) error
	ReplaceTechnologies(ctx context.Context, project *models.Project, technologies []models.Technology) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) applyVisible(db *gorm.DB) *gorm.DB {
	return db.Where("projects.status = ? AND projects.is_active = ?", models.StatusPublished, true)
}

func (r *projectRepository) applyOrdering(db *gorm.DB, ordering string) *gorm.DB {
	switch ordering {
	case "position":
		return db.Order("projects.position ASC, projects.published_at DESC")
	case "published_at":
		return db.Order("projects.published_at ASC")
	case "views_count":
		return db.Order("projects.views_count ASC")
	case "-views_count":
		return db.Order("projects.views_count DESC")
	default: // "-published_at" and anything unrecognized
		return db.Order("projects.published_at DESC")
	}
}

func (r *projectRepository) applyFilters(db *gorm.DB, opts ProjectListOptions) *gorm.DB {
	if opts.CategorySlug != "" {
		db = db.Joins("JOIN project_categories_m2m ON project_categories_m2m.project_id = projects.id").
			Joins("JOIN project_categories ON project_categories.id = project_categories_m2m.project_category_id").
			Where("project_categories.slug = ?", opts.CategorySlug)
	}
	if opts.TechnologySlug != "" {
		db = db.Joins("JOIN project_technologies ON project_technologies.project_id = projects.id").
			Joins("JOIN technologies ON technologies.id = project_technologies.technology_id").
			Where("technologies.slug = ?", opts.TechnologySlug)
	}
	if opts.Featured != nil {
		db = db.Where("projects.is_featured = ?", *opts.Featured)
	}
	if opts.Ongoing != nil {
		db = db.Where("projects.is_ongoing = ?", *opts.Ongoing)
	}
	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		db = db.Where(
			"CAST(projects.title AS TEXT) LIKE ? OR CAST(projects.description AS TEXT) LIKE ?",
			like, like,
		)
	}
	return db
}

func (r *projectRepository) ListPublished(ctx context.Context, opts ProjectListOptions) ([]*models.Project, int64, error) {
	base := r.applyFilters(r.applyVisible(r.db.WithContext(ctx).Model(&models.Project{})), opts)

	var count int64
	if err := base.Session(&gorm.Session{}).Distinct("projects.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := r.applyOrdering(base, opts.Ordering).
		Preload("Categories", "is_active = ?", true).
		Preload("Technologies", "is_active = ?", true).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, count, nil
}

func (r *projectRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.applyVisible(r.db.WithContext(ctx)).
		Preload("Categories", "is_active = ?", true).
		Preload("Technologies", "is_active = ?", true).
		Where("projects.slug = ?", slug).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.applyVisible(r.db.WithContext(ctx)).
		Preload("Categories", "is_active = ?", true).
		Preload("Technologies", "is_active = ?", true).
		Where("projects.is_featured = ?", true).
		Order("projects.featured_order ASC, projects.published_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// IncrementViews bumps the counter with a single atomic UPDATE.
func (r *projectRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Technologies").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Project, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Technologies").
		Order("projects.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, count, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) ReplaceCategories(ctx context.Context, project *models.Project, categories []models.ProjectCategory) error {
	return r.db.WithContext(ctx).Model(project).Association("Categories").Replace(categories)
}

func (r *projectRepository) ReplaceTechnologies(ctx context.Context, project *models.Project, technologies []models.Technology) error {
	return r.db.WithContext(ctx).Model(project).Association("Technologies").Replace(technologies)
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

func (r *projectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
