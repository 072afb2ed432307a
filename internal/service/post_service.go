package service

import (
	"context"
	"errors"

	"vitrine/internal/cache"
	"vitrine/internal/models"
	"vitrine/internal/repository"

	"gorm.io/gorm"
)

// PostService handles the blog post lifecycle and public reads.
type PostService struct {
	postRepo     repository.PostRepository
	taxonomyRepo repository.TaxonomyRepository
}

// PostInput carries the writable fields of a post for staff create/update.
type PostInput struct {
	Title         models.LocalizedText `json:"title"`
	Subtitle      models.LocalizedText `json:"subtitle"`
	Excerpt       models.LocalizedText `json:"excerpt"`
	Content       models.LocalizedText `json:"content"`
	Status        string               `json:"status"`
	Thumbnail     string               `json:"thumbnail"`
	CoverImage    string               `json:"cover_image"`
	CategoryIDs   []uint               `json:"category_ids"`
	TagIDs        []uint               `json:"tag_ids"`
	AllowComments *bool                `json:"allow_comments"`
	IsFeatured    bool                 `json:"is_featured"`
	FeaturedOrder uint                 `json:"featured_order"`
	IsActive      *bool                `json:"is_active"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, taxonomyRepo repository.TaxonomyRepository) *PostService {
	return &PostService{postRepo: postRepo, taxonomyRepo: taxonomyRepo}
}

// ListPosts returns published posts matching the options together with the
// total match count.
func (s *PostService) ListPosts(ctx context.Context, opts repository.PostListOptions) ([]*models.Post, int64, error) {
	return s.postRepo.ListPublished(ctx, opts)
}

// GetPost returns a published post by slug, counts the view and renders the
// requested language's markdown. Drafts and archived posts read as missing.
func (s *PostService) GetPost(ctx context.Context, slugStr, lang string) (*models.Post, error) {
	post, err := s.postRepo.GetPublishedBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slugStr)
		}
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, post.ID); err != nil {
		return nil, err
	}
	post.ViewsCount++

	post.ContentHTML = renderMarkdown(post.Content.Get(lang))
	return post, nil
}

func (s *PostService) validateInput(in PostInput) error {
	if in.Title.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Title is required in the default language")
	}
	if in.Content.Get(models.DefaultLanguage) == "" {
		return models.NewValidationError("Content is required in the default language")
	}
	if in.Status != "" && !models.PublicationStatus(in.Status).Valid() {
		return models.NewValidationError("Status must be one of draft, published, archived")
	}
	return nil
}

func (s *PostService) applyInput(post *models.Post, in PostInput) {
	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	if in.Status != "" {
		post.Status = models.PublicationStatus(in.Status)
	}
	post.Thumbnail = in.Thumbnail
	post.CoverImage = in.CoverImage
	post.IsFeatured = in.IsFeatured
	post.FeaturedOrder = in.FeaturedOrder
	if in.AllowComments != nil {
		post.AllowComments = *in.AllowComments
	}
	if in.IsActive != nil {
		post.IsActive = *in.IsActive
	}
	post.MetaTitle = in.MetaTitle
	post.MetaDescription = in.MetaDescription
	post.MetaKeywords = in.MetaKeywords
	post.ReadTime = estimateReadTime(in.Content.Get(models.DefaultLanguage))
}

// CreatePost stores a new post authored by the given staff user.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	slugStr, err := uniqueSlug(ctx, in.Title.Get(models.DefaultLanguage), s.postRepo.SlugExists)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Slug:          slugStr,
		AuthorID:      authorID,
		AllowComments: true,
		IsActive:      true,
	}
	s.applyInput(post, in)

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.assignRelations(ctx, post, in); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies the input to an existing post. The slug is stable across
// title edits; a post once published keeps its original published_at through
// any later status changes.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}

	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	s.applyInput(post, in)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	if err := s.assignRelations(ctx, post, in); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) assignRelations(ctx context.Context, post *models.Post, in PostInput) error {
	if in.CategoryIDs != nil {
		categories, err := s.taxonomyRepo.GetCategoriesByIDs(ctx, in.CategoryIDs)
		if err != nil {
			return err
		}
		if err := s.postRepo.ReplaceCategories(ctx, post, categories); err != nil {
			return err
		}
	}
	if in.TagIDs != nil {
		tags, err := s.taxonomyRepo.GetTagsByIDs(ctx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			return err
		}
	}
	return nil
}

// DeletePost soft-deletes a post.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

// GetPostByID returns any post regardless of status, for staff editing.
func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

// ListAllPosts returns every post for the staff dashboard.
func (s *PostService) ListAllPosts(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return s.postRepo.ListAll(ctx, limit, offset)
}

// GetBlogStats returns the public blog counters, cached briefly.
func (s *PostService) GetBlogStats(ctx context.Context) (*repository.BlogStats, error) {
	var stats repository.BlogStats
	err := cache.Aside(ctx, cache.StatsKey(), &stats, cache.StatsTTL, func() error {
		fresh, err := s.postRepo.Stats(ctx)
		if err != nil {
			return err
		}
		stats = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
