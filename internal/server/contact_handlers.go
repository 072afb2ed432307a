package server

import (
	"vitrine/internal/models"
	"vitrine/internal/repository"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitContactMessage handles POST /api/contact. Owner notifications are
// dispatched best-effort; a channel failure never fails the submission.
func (s *Server) SubmitContactMessage(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, result, err := s.contactService.SubmitMessage(c.Context(), service.SubmitContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       message,
		"notifications": result,
	})
}

// AdminListContactMessages handles GET /api/admin/contact-messages
func (s *Server) AdminListContactMessages(c *fiber.Ctx) error {
	p := s.parsePagination(c)

	opts := repository.ContactListOptions{
		Status: models.ContactStatus(c.Query("status")),
		Limit:  p.Limit(),
		Offset: p.Offset(),
	}
	if unread := c.Query("unread"); unread != "" {
		v := unread == "true" || unread == "1"
		opts.Unread = &v
	}

	messages, count, err := s.contactService.ListMessages(c.Context(), opts)
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, messages)
}

// AdminUnreadContactCount handles GET /api/admin/contact-messages/unread-count
func (s *Server) AdminUnreadContactCount(c *fiber.Ctx) error {
	count, err := s.contactService.CountUnread(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// AdminGetContactMessage handles GET /api/admin/contact-messages/:id.
// Opening a message marks it read; the read timestamp is stamped once.
func (s *Server) AdminGetContactMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.contactService.GetMessage(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(message)
}

// AdminUpdateContactStatus handles PATCH /api/admin/contact-messages/:id/status
func (s *Server) AdminUpdateContactStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.contactService.UpdateMessageStatus(c.Context(), id, models.ContactStatus(req.Status))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(message)
}
