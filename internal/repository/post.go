// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"vitrine/internal/models"

	"gorm.io/gorm"
)

// PostListOptions narrows and orders public post listings.
type PostListOptions struct {
	CategorySlug string
	TagSlug      string
	Featured     *bool
	Search       string
	Ordering     string
	Limit        int
	Offset       int
}

// PostRepository defines the interface for blog post data operations
type PostRepository interface {
	ListPublished(ctx context.Context, opts PostListOptions) ([]*models.Post, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	IncrementViews(ctx context.Context, id uint) error
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	Stats(ctx context.Context) (*BlogStats, error)
}

// BlogStats aggregates public counters for the blog.
type BlogStats struct {
	TotalPosts         int64 `json:"total_posts"`
	TotalViews         int64 `json:"total_views"`
	TotalComments      int64 `json:"total_comments"`
	TotalCategories    int64 `json:"total_categories"`
	TotalTags          int64 `json:"total_tags"`
	TotalSubscriptions int64 `json:"total_subscriptions"`
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyVisible narrows the query to publicly visible posts.
func (r *postRepository) applyVisible(db *gorm.DB) *gorm.DB {
	return db.Where("posts.status = ? AND posts.is_active = ?", models.StatusPublished, true)
}

// applyOrdering maps the request ordering token to an ORDER BY clause.
// Unknown tokens fall back to newest-published-first.
func (r *postRepository) applyOrdering(db *gorm.DB, ordering string) *gorm.DB {
	switch ordering {
	case "published_at":
		return db.Order("posts.published_at ASC")
	case "views_count":
		return db.Order("posts.views_count ASC")
	case "-views_count":
		return db.Order("posts.views_count DESC")
	case "created_at":
		return db.Order("posts.created_at ASC")
	case "-created_at":
		return db.Order("posts.created_at DESC")
	default: // "-published_at" and anything unrecognized
		return db.Order("posts.published_at DESC")
	}
}

// applySearch matches the query against every language value of the localized
// text columns. CAST keeps the predicate valid on both PostgreSQL and SQLite.
func (r *postRepository) applySearch(db *gorm.DB, query string) *gorm.DB {
	if query == "" {
		return db
	}
	like := "%" + query + "%"
	return db.Where(
		"CAST(posts.title AS TEXT) LIKE ? OR CAST(posts.excerpt AS TEXT) LIKE ? OR CAST(posts.content AS TEXT) LIKE ?",
		like, like, like,
	)
}

func (r *postRepository) applyFilters(db *gorm.DB, opts PostListOptions) *gorm.DB {
	if opts.CategorySlug != "" {
		db = db.Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Joins("JOIN categories ON categories.id = post_categories.category_id").
			Where("categories.slug = ?", opts.CategorySlug)
	}
	if opts.TagSlug != "" {
		db = db.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", opts.TagSlug)
	}
	if opts.Featured != nil {
		db = db.Where("posts.is_featured = ?", *opts.Featured)
	}
	return r.applySearch(db, opts.Search)
}

func (r *postRepository) ListPublished(ctx context.Context, opts PostListOptions) ([]*models.Post, int64, error) {
	base := r.applyFilters(r.applyVisible(r.db.WithContext(ctx).Model(&models.Post{})), opts)

	var count int64
	if err := base.Session(&gorm.Session{}).Distinct("posts.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.applyOrdering(base, opts.Ordering).
		Preload("Author").
		Preload("Categories", "is_active = ?", true).
		Preload("Tags", "is_active = ?", true).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *postRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.applyVisible(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Categories", "is_active = ?", true).
		Preload("Tags", "is_active = ?", true).
		Where("posts.slug = ?", slug).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// IncrementViews bumps the counter with a single atomic UPDATE.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	return r.db.WithContext(ctx).Model(post).Association("Categories").Replace(categories)
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Stats(ctx context.Context) (*BlogStats, error) {
	stats := &BlogStats{}
	db := r.db.WithContext(ctx)

	if err := r.applyVisible(db.Model(&models.Post{})).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}

	var totalViews *int64
	if err := r.applyVisible(db.Model(&models.Post{})).
		Select("SUM(posts.views_count)").
		Scan(&totalViews).Error; err != nil {
		return nil, err
	}
	if totalViews != nil {
		stats.TotalViews = *totalViews
	}

	if err := db.Model(&models.Comment{}).
		Where("is_approved = ? AND is_active = ?", true, true).
		Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Category{}).Where("is_active = ?", true).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Tag{}).Where("is_active = ?", true).Count(&stats.TotalTags).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Subscription{}).Where("is_active = ?", true).Count(&stats.TotalSubscriptions).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
