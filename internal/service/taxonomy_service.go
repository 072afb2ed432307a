package service

import (
	"context"
	"errors"

	"vitrine/internal/cache"
	"vitrine/internal/models"
	"vitrine/internal/repository"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// TaxonomyService serves the classification lists and their staff CRUD.
// Public lists are cached; any staff write drops the cached copies.
type TaxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{taxonomyRepo: taxonomyRepo}
}

// ListCategories returns active blog categories with published post counts.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.CategoriesKey(), &categories, cache.TaxonomyTTL, func() error {
		fresh, err := s.taxonomyRepo.ListCategories(ctx)
		if err != nil {
			return err
		}
		categories = fresh
		return nil
	})
	return categories, err
}

// GetCategory returns one active category by slug.
func (s *TaxonomyService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.taxonomyRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", slug)
		}
		return nil, err
	}
	return category, nil
}

// CreateCategory stores a new blog category.
func (s *TaxonomyService) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.Name.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Name is required in the default language")
	}
	if category.Slug == "" {
		slugStr, err := uniqueSlug(ctx, category.Name.Get(models.DefaultLanguage), s.categorySlugExists)
		if err != nil {
			return err
		}
		category.Slug = slugStr
	}
	if err := s.taxonomyRepo.CreateCategory(ctx, category); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

func (s *TaxonomyService) categorySlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := s.taxonomyRepo.GetCategoryBySlug(ctx, slug)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// UpdateCategory applies changes to a category.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, category *models.Category) error {
	if err := s.taxonomyRepo.UpdateCategory(ctx, category); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// DeleteCategory removes a category.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.taxonomyRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// ListTags returns active tags with published post counts.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := cache.Aside(ctx, cache.TagsKey(), &tags, cache.TaxonomyTTL, func() error {
		fresh, err := s.taxonomyRepo.ListTags(ctx)
		if err != nil {
			return err
		}
		tags = fresh
		return nil
	})
	return tags, err
}

// GetTag returns one active tag by slug.
func (s *TaxonomyService) GetTag(ctx context.Context, slug string) (*models.Tag, error) {
	tag, err := s.taxonomyRepo.GetTagBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", slug)
		}
		return nil, err
	}
	return tag, nil
}

// CreateTag stores a new tag.
func (s *TaxonomyService) CreateTag(ctx context.Context, tag *models.Tag) error {
	if tag.Name.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Name is required in the default language")
	}
	if tag.Slug == "" {
		slugStr, err := uniqueSlug(ctx, tag.Name.Get(models.DefaultLanguage), s.tagSlugExists)
		if err != nil {
			return err
		}
		tag.Slug = slugStr
	}
	if err := s.taxonomyRepo.CreateTag(ctx, tag); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

func (s *TaxonomyService) tagSlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := s.taxonomyRepo.GetTagBySlug(ctx, slug)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// UpdateTag applies changes to a tag.
func (s *TaxonomyService) UpdateTag(ctx context.Context, tag *models.Tag) error {
	if err := s.taxonomyRepo.UpdateTag(ctx, tag); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// DeleteTag removes a tag.
func (s *TaxonomyService) DeleteTag(ctx context.Context, id uint) error {
	if err := s.taxonomyRepo.DeleteTag(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// ListProjectCategories returns active portfolio categories.
func (s *TaxonomyService) ListProjectCategories(ctx context.Context) ([]*models.ProjectCategory, error) {
	return s.taxonomyRepo.ListProjectCategories(ctx)
}

// CreateProjectCategory stores a new portfolio category.
func (s *TaxonomyService) CreateProjectCategory(ctx context.Context, category *models.ProjectCategory) error {
	if category.Name.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Name is required in the default language")
	}
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name.Get(models.DefaultLanguage))
	}
	if err := s.taxonomyRepo.CreateProjectCategory(ctx, category); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// UpdateProjectCategory applies changes to a portfolio category.
func (s *TaxonomyService) UpdateProjectCategory(ctx context.Context, category *models.ProjectCategory) error {
	if err := s.taxonomyRepo.UpdateProjectCategory(ctx, category); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// DeleteProjectCategory removes a portfolio category.
func (s *TaxonomyService) DeleteProjectCategory(ctx context.Context, id uint) error {
	if err := s.taxonomyRepo.DeleteProjectCategory(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// ListTechnologies returns the active technology entries.
func (s *TaxonomyService) ListTechnologies(ctx context.Context) ([]*models.Technology, error) {
	var technologies []*models.Technology
	err := cache.Aside(ctx, cache.TechnologiesKey(), &technologies, cache.TaxonomyTTL, func() error {
		fresh, err := s.taxonomyRepo.ListTechnologies(ctx)
		if err != nil {
			return err
		}
		technologies = fresh
		return nil
	})
	return technologies, err
}

// CreateTechnology stores a new technology entry.
func (s *TaxonomyService) CreateTechnology(ctx context.Context, technology *models.Technology) error {
	if technology.Name == "" {
		return models.NewValidationError("Name is required")
	}
	if technology.Slug == "" {
		technology.Slug = slug.Make(technology.Name)
	}
	if err := s.taxonomyRepo.CreateTechnology(ctx, technology); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// UpdateTechnology applies changes to a technology entry.
func (s *TaxonomyService) UpdateTechnology(ctx context.Context, technology *models.Technology) error {
	if err := s.taxonomyRepo.UpdateTechnology(ctx, technology); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// DeleteTechnology removes a technology entry.
func (s *TaxonomyService) DeleteTechnology(ctx context.Context, id uint) error {
	if err := s.taxonomyRepo.DeleteTechnology(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// ListSkills returns active skills, optionally filtered by category.
func (s *TaxonomyService) ListSkills(ctx context.Context, category string) ([]*models.Skill, error) {
	skillCategory := models.SkillCategory(category)
	if category != "" && !skillCategory.Valid() {
		return nil, models.NewValidationError("Unknown skill category")
	}

	var skills []*models.Skill
	err := cache.Aside(ctx, cache.SkillsKey(category), &skills, cache.TaxonomyTTL, func() error {
		fresh, err := s.taxonomyRepo.ListSkills(ctx, skillCategory)
		if err != nil {
			return err
		}
		skills = fresh
		return nil
	})
	return skills, err
}

// CreateSkill stores a new skill entry.
func (s *TaxonomyService) CreateSkill(ctx context.Context, skill *models.Skill) error {
	if skill.Name.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Name is required in the default language")
	}
	if skill.Level > 100 {
		return models.NewValidationError("Level must be between 0 and 100")
	}
	if skill.Category != "" && !skill.Category.Valid() {
		return models.NewValidationError("Unknown skill category")
	}
	if skill.Slug == "" {
		skill.Slug = slug.Make(skill.Name.Get(models.DefaultLanguage))
	}
	if err := s.taxonomyRepo.CreateSkill(ctx, skill); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// UpdateSkill applies changes to a skill entry.
func (s *TaxonomyService) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	if skill.Level > 100 {
		return models.NewValidationError("Level must be between 0 and 100")
	}
	if err := s.taxonomyRepo.UpdateSkill(ctx, skill); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}

// DeleteSkill removes a skill entry.
func (s *TaxonomyService) DeleteSkill(ctx context.Context, id uint) error {
	if err := s.taxonomyRepo.DeleteSkill(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTaxonomies(ctx)
	return nil
}
