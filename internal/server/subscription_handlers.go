package server

import (
	"vitrine/internal/models"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Subscribe handles POST /api/blog/subscribe. An email that is already
// subscribed is rejected with 409 regardless of its active state.
func (s *Server) Subscribe(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Language string `json:"language"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	subscription, err := s.subscriptionService.Subscribe(c.Context(), service.SubscribeInput{
		Email:     req.Email,
		Name:      req.Name,
		Language:  req.Language,
		IPAddress: c.IP(),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subscription)
}

// Unsubscribe handles POST /api/blog/unsubscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.subscriptionService.Unsubscribe(c.Context(), req.Email); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "unsubscribed"})
}

// AdminListSubscriptions handles GET /api/admin/subscriptions
func (s *Server) AdminListSubscriptions(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	subscriptions, count, err := s.subscriptionService.ListSubscriptions(c.Context(), p.Limit(), p.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, subscriptions)
}
