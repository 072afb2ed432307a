package service

import (
	"context"
	"errors"

	"vitrine/internal/models"
	"vitrine/internal/repository"

	"gorm.io/gorm"
)

const (
	maxCommentLen   = 10000
	maxUserAgentLen = 500
)

// CommentService handles public comment submission and staff moderation.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// SubmitCommentInput is a public comment submission. Moderation fields are
// not part of the input; every new comment starts unapproved.
type SubmitCommentInput struct {
	PostSlug      string
	ParentID      *uint
	AuthorName    string
	AuthorEmail   string
	AuthorWebsite string
	Content       string
	IPAddress     string
	UserAgent     string
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// SubmitComment stores a new comment awaiting moderation. The target post
// must be publicly visible and accepting comments.
func (s *CommentService) SubmitComment(ctx context.Context, in SubmitCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetPublishedBySlug(ctx, in.PostSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostSlug)
		}
		return nil, err
	}
	if !post.AllowComments {
		return nil, models.NewValidationError("Comments are disabled for this post")
	}

	if in.AuthorName == "" {
		return nil, models.NewValidationError("Author name is required")
	}
	if in.AuthorEmail == "" {
		return nil, models.NewValidationError("Author email is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Comment", *in.ParentID)
			}
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	userAgent := in.UserAgent
	if len(userAgent) > maxUserAgentLen {
		userAgent = userAgent[:maxUserAgentLen]
	}

	comment := &models.Comment{
		PostID:        post.ID,
		ParentID:      in.ParentID,
		AuthorName:    in.AuthorName,
		AuthorEmail:   in.AuthorEmail,
		AuthorWebsite: in.AuthorWebsite,
		Content:       in.Content,
		IsApproved:    false,
		IsActive:      true,
		IPAddress:     in.IPAddress,
		UserAgent:     userAgent,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the approved comment tree of a visible post.
func (s *CommentService) ListComments(ctx context.Context, postSlug string) ([]*models.Comment, error) {
	post, err := s.postRepo.GetPublishedBySlug(ctx, postSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postSlug)
		}
		return nil, err
	}
	return s.commentRepo.ListVisibleByPost(ctx, post.ID)
}

// ListPendingComments returns unapproved comments for the moderation queue.
func (s *CommentService) ListPendingComments(ctx context.Context, limit, offset int) ([]*models.Comment, int64, error) {
	return s.commentRepo.ListPending(ctx, limit, offset)
}

// ApproveComment makes a comment publicly visible.
func (s *CommentService) ApproveComment(ctx context.Context, id uint) error {
	if err := s.commentRepo.SetApproved(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return err
	}
	return nil
}

// RejectComment withdraws approval without deleting the record.
func (s *CommentService) RejectComment(ctx context.Context, id uint) error {
	if err := s.commentRepo.SetApproved(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return err
	}
	return nil
}

// DeactivateComment hides a comment and its subtree from public listings.
func (s *CommentService) DeactivateComment(ctx context.Context, id uint) error {
	if err := s.commentRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return err
	}
	return nil
}

// DeleteComment removes a comment entirely.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}
