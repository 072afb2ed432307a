package server

import (
	"vitrine/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/blog/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": categories})
}

// GetCategory handles GET /api/blog/categories/:slug
func (s *Server) GetCategory(c *fiber.Ctx) error {
	category, err := s.taxonomyService.GetCategory(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// GetTags handles GET /api/blog/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.taxonomyService.ListTags(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": tags})
}

// GetTag handles GET /api/blog/tags/:slug
func (s *Server) GetTag(c *fiber.Ctx) error {
	tag, err := s.taxonomyService.GetTag(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tag)
}

// GetProjectCategories handles GET /api/portfolio/categories
func (s *Server) GetProjectCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListProjectCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": categories})
}

// GetTechnologies handles GET /api/portfolio/technologies
func (s *Server) GetTechnologies(c *fiber.Ctx) error {
	technologies, err := s.taxonomyService.ListTechnologies(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": technologies})
}

// GetSkills handles GET /api/portfolio/skills with an optional category filter.
func (s *Server) GetSkills(c *fiber.Ctx) error {
	skills, err := s.taxonomyService.ListSkills(c.Context(), c.Query("category"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"results": skills})
}

// AdminCreateCategory handles POST /api/admin/categories
func (s *Server) AdminCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.taxonomyService.CreateCategory(c.Context(), &category); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// AdminUpdateCategory handles PUT /api/admin/categories/:id
func (s *Server) AdminUpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	category.ID = id

	if err := s.taxonomyService.UpdateCategory(c.Context(), &category); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// AdminDeleteCategory handles DELETE /api/admin/categories/:id
func (s *Server) AdminDeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteCategory(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminCreateTag handles POST /api/admin/tags
func (s *Server) AdminCreateTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := c.BodyParser(&tag); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.taxonomyService.CreateTag(c.Context(), &tag); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// AdminUpdateTag handles PUT /api/admin/tags/:id
func (s *Server) AdminUpdateTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var tag models.Tag
	if err := c.BodyParser(&tag); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	tag.ID = id

	if err := s.taxonomyService.UpdateTag(c.Context(), &tag); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tag)
}

// AdminDeleteTag handles DELETE /api/admin/tags/:id
func (s *Server) AdminDeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteTag(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminCreateProjectCategory handles POST /api/admin/project-categories
func (s *Server) AdminCreateProjectCategory(c *fiber.Ctx) error {
	var category models.ProjectCategory
	if err := c.BodyParser(&category); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.taxonomyService.CreateProjectCategory(c.Context(), &category); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// AdminUpdateProjectCategory handles PUT /api/admin/project-categories/:id
func (s *Server) AdminUpdateProjectCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var category models.ProjectCategory
	if err := c.BodyParser(&category); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	category.ID = id

	if err := s.taxonomyService.UpdateProjectCategory(c.Context(), &category); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// AdminDeleteProjectCategory handles DELETE /api/admin/project-categories/:id
func (s *Server) AdminDeleteProjectCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteProjectCategory(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminCreateTechnology handles POST /api/admin/technologies
func (s *Server) AdminCreateTechnology(c *fiber.Ctx) error {
	var technology models.Technology
	if err := c.BodyParser(&technology); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.taxonomyService.CreateTechnology(c.Context(), &technology); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(technology)
}

// AdminUpdateTechnology handles PUT /api/admin/technologies/:id
func (s *Server) AdminUpdateTechnology(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var technology models.Technology
	if err := c.BodyParser(&technology); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	technology.ID = id

	if err := s.taxonomyService.UpdateTechnology(c.Context(), &technology); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(technology)
}

// AdminDeleteTechnology handles DELETE /api/admin/technologies/:id
func (s *Server) AdminDeleteTechnology(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteTechnology(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminCreateSkill handles POST /api/admin/skills
func (s *Server) AdminCreateSkill(c *fiber.Ctx) error {
	var skill models.Skill
	if err := c.BodyParser(&skill); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.taxonomyService.CreateSkill(c.Context(), &skill); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// AdminUpdateSkill handles PUT /api/admin/skills/:id
func (s *Server) AdminUpdateSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var skill models.Skill
	if err := c.BodyParser(&skill); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	skill.ID = id

	if err := s.taxonomyService.UpdateSkill(c.Context(), &skill); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skill)
}

// AdminDeleteSkill handles DELETE /api/admin/skills/:id
func (s *Server) AdminDeleteSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteSkill(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
