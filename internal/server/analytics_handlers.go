package server

import (
	"time"

	"vitrine/internal/models"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// TrackPageView handles POST /api/analytics/pageview. The response returns
// the visitor and session identifiers the client should keep for follow-up
// beacons.
func (s *Server) TrackPageView(c *fiber.Ctx) error {
	var req struct {
		VisitorID   string            `json:"visitor_id"`
		SessionID   string            `json:"session_id"`
		Path        string            `json:"path"`
		QueryParams map[string]string `json:"query_params"`
		Referrer    string            `json:"referrer"`
		Language    string            `json:"language"`
		IsMobile    bool              `json:"is_mobile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.analyticsService.TrackPageView(c.Context(), service.TrackPageViewInput{
		VisitorID:   req.VisitorID,
		SessionID:   req.SessionID,
		Path:        req.Path,
		QueryParams: req.QueryParams,
		Referrer:    req.Referrer,
		Language:    req.Language,
		IPAddress:   c.IP(),
		UserAgent:   c.Get(fiber.HeaderUserAgent),
		IsMobile:    req.IsMobile,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// TrackEvent handles POST /api/analytics/event
func (s *Server) TrackEvent(c *fiber.Ctx) error {
	var req struct {
		Name      string                 `json:"name"`
		Category  string                 `json:"category"`
		Data      map[string]interface{} `json:"data"`
		Path      string                 `json:"path"`
		VisitorID string                 `json:"visitor_id"`
		SessionID string                 `json:"session_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.analyticsService.TrackEvent(c.Context(), service.TrackEventInput{
		Name:      req.Name,
		Category:  req.Category,
		Data:      req.Data,
		Path:      req.Path,
		VisitorID: req.VisitorID,
		SessionID: req.SessionID,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// EndSession handles POST /api/analytics/session/end. Closing is idempotent;
// a session keeps its first end time.
func (s *Server) EndSession(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SessionID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("session_id is required"))
	}

	if err := s.analyticsService.EndSession(c.Context(), req.SessionID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "closed"})
}

// sinceParam parses the "days" query parameter into a cutoff time.
func sinceParam(c *fiber.Ctx) time.Time {
	days := c.QueryInt("days", 30)
	if days <= 0 {
		days = 30
	}
	return time.Now().AddDate(0, 0, -days)
}

// AdminListPageViews handles GET /api/admin/analytics/pageviews
func (s *Server) AdminListPageViews(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	views, count, err := s.analyticsService.ListPageViews(
		c.Context(), c.Query("path"), sinceParam(c), p.Limit(), p.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, views)
}

// AdminListEvents handles GET /api/admin/analytics/events
func (s *Server) AdminListEvents(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	events, count, err := s.analyticsService.ListEvents(
		c.Context(), c.Query("name"), c.Query("category"), sinceParam(c), p.Limit(), p.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, events)
}

// AdminAnalyticsSummary handles GET /api/admin/analytics/summary
func (s *Server) AdminAnalyticsSummary(c *fiber.Ctx) error {
	summary, err := s.analyticsService.Summary(c.Context(), sinceParam(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}
