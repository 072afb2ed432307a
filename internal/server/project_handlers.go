package server

import (
	"vitrine/internal/models"
	"vitrine/internal/repository"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProjects handles GET /api/portfolio/projects
func (s *Server) GetProjects(c *fiber.Ctx) error {
	p := s.parsePagination(c)

	opts := repository.ProjectListOptions{
		CategorySlug:   c.Query("category"),
		TechnologySlug: c.Query("technology"),
		Search:         c.Query("search"),
		Ordering:       c.Query("ordering"),
		Limit:          p.Limit(),
		Offset:         p.Offset(),
	}
	if featured := c.Query("featured"); featured != "" {
		v := featured == "true" || featured == "1"
		opts.Featured = &v
	}
	if ongoing := c.Query("ongoing"); ongoing != "" {
		v := ongoing == "true" || ongoing == "1"
		opts.Ongoing = &v
	}

	projects, count, err := s.projectService.ListProjects(c.Context(), opts)
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, projects)
}

// GetFeaturedProjects handles GET /api/portfolio/projects/featured
func (s *Server) GetFeaturedProjects(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 6)
	if limit <= 0 || limit > maxPageSize {
		limit = 6
	}

	projects, err := s.projectService.ListFeaturedProjects(c.Context(), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": projects})
}

// GetProject handles GET /api/portfolio/projects/:slug. Reading a project
// counts a view and renders the content markdown in the requested language.
func (s *Server) GetProject(c *fiber.Ctx) error {
	project, err := s.projectService.GetProject(c.Context(), c.Params("slug"), requestLanguage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(project)
}

// AdminListProjects handles GET /api/admin/projects and includes drafts.
func (s *Server) AdminListProjects(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	projects, count, err := s.projectService.ListAllProjects(c.Context(), p.Limit(), p.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}
	return paginated(c, p, count, projects)
}

// AdminCreateProject handles POST /api/admin/projects
func (s *Server) AdminCreateProject(c *fiber.Ctx) error {
	var in service.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.CreateProject(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// AdminGetProject handles GET /api/admin/projects/:id
func (s *Server) AdminGetProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectService.GetProjectByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(project)
}

// AdminUpdateProject handles PUT /api/admin/projects/:id
func (s *Server) AdminUpdateProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.UpdateProject(c.Context(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(project)
}

// AdminDeleteProject handles DELETE /api/admin/projects/:id
func (s *Server) AdminDeleteProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.projectService.DeleteProject(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
