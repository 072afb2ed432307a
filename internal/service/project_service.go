package service

import (
	"context"
	"errors"
	"time"

	"vitrine/internal/models"
	"vitrine/internal/repository"

	"gorm.io/gorm"
)

// ProjectService handles the portfolio project lifecycle and public reads.
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	taxonomyRepo repository.TaxonomyRepository
}

// ProjectInput carries the writable fields of a project for staff create/update.
type ProjectInput struct {
	Title       models.LocalizedText `json:"title"`
	Subtitle    models.LocalizedText `json:"subtitle"`
	Description models.LocalizedText `json:"description"`
	Content     models.LocalizedText `json:"content"`
	Status      string               `json:"status"`
	Thumbnail   string               `json:"thumbnail"`
	CoverImage  string               `json:"cover_image"`

	CategoryIDs   []uint `json:"category_ids"`
	TechnologyIDs []uint `json:"technology_ids"`

	ClientName    string     `json:"client_name"`
	ClientWebsite string     `json:"client_website"`
	ProjectURL    string     `json:"project_url"`
	GithubURL     string     `json:"github_url"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	IsOngoing     bool       `json:"is_ongoing"`
	IsFeatured    bool       `json:"is_featured"`
	FeaturedOrder uint       `json:"featured_order"`
	Position      uint       `json:"position"`
	IsActive      *bool      `json:"is_active"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepository, taxonomyRepo repository.TaxonomyRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, taxonomyRepo: taxonomyRepo}
}

// ListProjects returns published projects matching the options together with
// the total match count.
func (s *ProjectService) ListProjects(ctx context.Context, opts repository.ProjectListOptions) ([]*models.Project, int64, error) {
	return s.projectRepo.ListPublished(ctx, opts)
}

// ListFeaturedProjects returns the promoted projects in display order.
func (s *ProjectService) ListFeaturedProjects(ctx context.Context, limit int) ([]*models.Project, error) {
	return s.projectRepo.ListFeatured(ctx, limit)
}

// GetProject returns a published project by slug, counts the view and renders
// the requested language's markdown. Drafts and archived projects read as
// missing.
func (s *ProjectService) GetProject(ctx context.Context, slugStr, lang string) (*models.Project, error) {
	project, err := s.projectRepo.GetPublishedBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", slugStr)
		}
		return nil, err
	}

	if err := s.projectRepo.IncrementViews(ctx, project.ID); err != nil {
		return nil, err
	}
	project.ViewsCount++

	project.ContentHTML = renderMarkdown(project.Content.Get(lang))
	return project, nil
}

func (s *ProjectService) validateInput(in ProjectInput) error {
	if in.Title.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Title is required in the default language")
	}
	if in.Description.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Description is required in the default language")
	}
	if in.Status != "" && !models.PublicationStatus(in.Status).Valid() {
		return models.NewValidationError("Status must be one of draft, published, archived")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return models.NewValidationError("End date cannot precede start date")
	}
	return nil
}

func (s *ProjectService) applyInput(project *models.Project, in ProjectInput) {
	project.Title = in.Title
	project.Subtitle = in.Subtitle
	project.Description = in.Description
	project.Content = in.Content
	if in.Status != "" {
		project.Status = models.PublicationStatus(in.Status)
	}
	project.Thumbnail = in.Thumbnail
	project.CoverImage = in.CoverImage
	project.ClientName = in.ClientName
	project.ClientWebsite = in.ClientWebsite
	project.ProjectURL = in.ProjectURL
	project.GithubURL = in.GithubURL
	project.StartDate = in.StartDate
	project.EndDate = in.EndDate
	project.IsOngoing = in.IsOngoing
	project.IsFeatured = in.IsFeatured
	project.FeaturedOrder = in.FeaturedOrder
	project.Position = in.Position
	if in.IsActive != nil {
		project.IsActive = *in.IsActive
	}
	project.MetaTitle = in.MetaTitle
	project.MetaDescription = in.MetaDescription
	project.MetaKeywords = in.MetaKeywords
}

// CreateProject stores a new portfolio project.
func (s *ProjectService) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	slugStr, err := uniqueSlug(ctx, in.Title.Get(models.DefaultLanguage), s.projectRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Slug:     slugStr,
		IsActive: true,
	}
	s.applyInput(project, in)

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	if err := s.assignRelations(ctx, project, in); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, project.ID)
}

// UpdateProject applies the input to an existing project. A project once
// published keeps its original published_at through later status changes.
func (s *ProjectService) UpdateProject(ctx context.Context, id uint, in ProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, err
	}

	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	s.applyInput(project, in)
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	if err := s.assignRelations(ctx, project, in); err != nil {
		return nil, err
	}

	return s.projectRepo.GetByID(ctx, project.ID)
}

func (s *ProjectService) assignRelations(ctx context.Context, project *models.Project, in ProjectInput) error {
	if in.CategoryIDs != nil {
		categories, err := s.taxonomyRepo.GetProjectCategoriesByIDs(ctx, in.CategoryIDs)
		if err != nil {
			return err
		}
		if err := s.projectRepo.ReplaceCategories(ctx, project, categories); err != nil {
			return err
		}
	}
	if in.TechnologyIDs != nil {
		technologies, err := s.taxonomyRepo.GetTechnologiesByIDs(ctx, in.TechnologyIDs)
		if err != nil {
			return err
		}
		if err := s.projectRepo.ReplaceTechnologies(ctx, project, technologies); err != nil {
			return err
		}
	}
	return nil
}

// DeleteProject soft-deletes a project.
func (s *ProjectService) DeleteProject(ctx context.Context, id uint) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Project", id)
		}
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}

// GetProjectByID returns any project regardless of status, for staff editing.
func (s *ProjectService) GetProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, err
	}
	return project, nil
}

// ListAllProjects returns every project for the staff dashboard.
func (s *ProjectService) ListAllProjects(ctx context.Context, limit, offset int) ([]*models.Project, int64, error) {
	return s.projectRepo.ListAll(ctx, limit, offset)
}
