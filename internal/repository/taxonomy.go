package repository

import (
	"context"

	"vitrine/internal/models"

	"gorm.io/gorm"
)

// TaxonomyRepository covers the classification entities shared by the blog
// and portfolio: categories, tags, project categories, technologies, skills.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	GetCategoriesByIDs(ctx context.Context, ids []uint) ([]models.Category, error)

	ListTags(ctx context.Context) ([]*models.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id uint) error
	GetTagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)

	ListProjectCategories(ctx context.Context) ([]*models.ProjectCategory, error)
	CreateProjectCategory(ctx context.Context, category *models.ProjectCategory) error
	UpdateProjectCategory(ctx context.Context, category *models.ProjectCategory) error
	DeleteProjectCategory(ctx context.Context, id uint) error
	GetProjectCategoriesByIDs(ctx context.Context, ids []uint) ([]models.ProjectCategory, error)

	ListTechnologies(ctx context.Context) ([]*models.Technology, error)
	CreateTechnology(ctx context.Context, technology *models.Technology) error
	UpdateTechnology(ctx context.Context, technology *models.Technology) error
	DeleteTechnology(ctx context.Context, id uint) error
	GetTechnologiesByIDs(ctx context.Context, ids []uint) ([]models.Technology, error)

	ListSkills(ctx context.Context, category models.SkillCategory) ([]*models.Skill, error)
	CreateSkill(ctx context.Context, skill *models.Skill) error
	UpdateSkill(ctx context.Context, skill *models.Skill) error
	DeleteSkill(ctx context.Context, id uint) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new taxonomy repository
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Select("categories.*, (SELECT COUNT(*) FROM post_categories j JOIN posts p ON p.id = j.post_id WHERE j.category_id = categories.id AND p.status = 'published' AND p.is_active = true AND p.deleted_at IS NULL) AS posts_count").
		Where("categories.is_active = ?", true).
		Order("categories.position ASC, categories.id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *taxonomyRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *taxonomyRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *taxonomyRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func (r *taxonomyRepository) GetCategoriesByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *taxonomyRepository) ListTags(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Select("tags.*, (SELECT COUNT(*) FROM post_tags j JOIN posts p ON p.id = j.post_id WHERE j.tag_id = tags.id AND p.status = 'published' AND p.is_active = true AND p.deleted_at IS NULL) AS posts_count").
		Where("tags.is_active = ?", true).
		Order("tags.id ASC").
		Find(&tags).Error
	return tags, err
}

func (r *taxonomyRepository) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *taxonomyRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *taxonomyRepository) UpdateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *taxonomyRepository) DeleteTag(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tag{}, id).Error
}

func (r *taxonomyRepository) GetTagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *taxonomyRepository) ListProjectCategories(ctx context.Context) ([]*models.ProjectCategory, error) {
	var categories []*models.ProjectCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *taxonomyRepository) CreateProjectCategory(ctx context.Context, category *models.ProjectCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *taxonomyRepository) UpdateProjectCategory(ctx context.Context, category *models.ProjectCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *taxonomyRepository) DeleteProjectCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProjectCategory{}, id).Error
}

func (r *taxonomyRepository) GetProjectCategoriesByIDs(ctx context.Context, ids []uint) ([]models.ProjectCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.ProjectCategory
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *taxonomyRepository) ListTechnologies(ctx context.Context) ([]*models.Technology, error) {
	var technologies []*models.Technology
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC, name ASC").
		Find(&technologies).Error
	return technologies, err
}

func (r *taxonomyRepository) CreateTechnology(ctx context.Context, technology *models.Technology) error {
	return r.db.WithContext(ctx).Create(technology).Error
}

func (r *taxonomyRepository) UpdateTechnology(ctx context.Context, technology *models.Technology) error {
	return r.db.WithContext(ctx).Save(technology).Error
}

func (r *taxonomyRepository) DeleteTechnology(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Technology{}, id).Error
}

func (r *taxonomyRepository) GetTechnologiesByIDs(ctx context.Context, ids []uint) ([]models.Technology, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var technologies []models.Technology
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&technologies).Error
	return technologies, err
}

func (r *taxonomyRepository) ListSkills(ctx context.Context, category models.SkillCategory) ([]*models.Skill, error) {
	db := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	var skills []*models.Skill
	err := db.Order("position ASC, level DESC").Find(&skills).Error
	return skills, err
}

func (r *taxonomyRepository) CreateSkill(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *taxonomyRepository) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Save(skill).Error
}

func (r *taxonomyRepository) DeleteSkill(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Skill{}, id).Error
}
