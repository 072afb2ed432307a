package server

import (
	"vitrine/internal/models"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/blog/posts/:slug/comments. Only approved,
// active comments are returned, as a nested tree.
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": comments})
}

// CreateComment handles POST /api/blog/posts/:slug/comments. The comment is
// stored unapproved and stays invisible until a moderator approves it.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		ParentID      *uint  `json:"parent_id"`
		AuthorName    string `json:"author_name"`
		AuthorEmail   string `json:"author_email"`
		AuthorWebsite string `json:"author_website"`
		Content       string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err := s.commentService.SubmitComment(c.Context(), service.SubmitCommentInput{
		PostSlug:      c.Params("slug"),
		ParentID:      req.ParentID,
		AuthorName:    req.AuthorName,
		AuthorEmail:   req.AuthorEmail,
		AuthorWebsite: req.AuthorWebsite,
		Content:       req.Content,
		IPAddress:     c.IP(),
		UserAgent:     c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment submitted and is awaiting moderation",
		"status":  "pending_approval",
	})
}

// AdminListPendingComments handles GET /api/admin/comments/pending
func (s *Server) AdminListPendingComments(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	comments, count, err := s.commentService.ListPendingComments(c.Context(), p.Limit(), p.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, comments)
}

// AdminApproveComment handles POST /api/admin/comments/:id/approve
func (s *Server) AdminApproveComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.ApproveComment(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "approved"})
}

// AdminRejectComment handles POST /api/admin/comments/:id/reject
func (s *Server) AdminRejectComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.RejectComment(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "rejected"})
}

// AdminDeactivateComment handles POST /api/admin/comments/:id/deactivate
func (s *Server) AdminDeactivateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeactivateComment(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deactivated"})
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
