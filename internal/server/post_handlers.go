package server

import (
	"vitrine/internal/models"
	"vitrine/internal/repository"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/blog/posts. Only published, active posts are
// listed; filters compose with AND semantics.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := s.parsePagination(c)

	opts := repository.PostListOptions{
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
		Limit:        p.Limit(),
		Offset:       p.Offset(),
	}
	if featured := c.Query("featured"); featured != "" {
		v := featured == "true" || featured == "1"
		opts.Featured = &v
	}

	posts, count, err := s.postService.ListPosts(c.Context(), opts)
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, posts)
}

// GetFeaturedPosts handles GET /api/blog/posts/featured
func (s *Server) GetFeaturedPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 6)
	if limit <= 0 || limit > maxPageSize {
		limit = 6
	}

	featured := true
	posts, _, err := s.postService.ListPosts(c.Context(), repository.PostListOptions{
		Featured: &featured,
		Limit:    limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": posts})
}

// GetPost handles GET /api/blog/posts/:slug. Reading a post counts a view
// and renders the content markdown in the requested language.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.Context(), c.Params("slug"), requestLanguage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetBlogStats handles GET /api/blog/stats
func (s *Server) GetBlogStats(c *fiber.Ctx) error {
	stats, err := s.postService.GetBlogStats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// AdminListPosts handles GET /api/admin/posts and includes drafts.
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	posts, count, err := s.postService.ListAllPosts(c.Context(), p.Limit(), p.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, posts)
}

// AdminCreatePost handles POST /api/admin/posts
func (s *Server) AdminCreatePost(c *fiber.Ctx) error {
	var in service.PostInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	authorID, _ := c.Locals("userID").(uint)
	post, err := s.postService.CreatePost(c.Context(), authorID, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// AdminGetPost handles GET /api/admin/posts/:id
func (s *Server) AdminGetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPostByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// AdminUpdatePost handles PUT /api/admin/posts/:id
func (s *Server) AdminUpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.PostInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// AdminDeletePost handles DELETE /api/admin/posts/:id
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
