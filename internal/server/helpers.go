package server

import (
	"errors"
	"strings"

	"vitrine/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const maxPageSize = 100

// Pagination holds parsed page/page_size query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Limit returns the SQL limit for the page.
func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset returns the SQL offset for the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// parsePagination extracts page and page_size query parameters. Page numbering
// starts at 1; page_size defaults to the configured value and is capped.
func (s *Server) parsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("page_size", s.config.PageSize)
	if pageSize <= 0 {
		pageSize = s.config.PageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return Pagination{Page: page, PageSize: pageSize}
}

// paginated wraps a result page in the list envelope.
func paginated(c *fiber.Ctx, p Pagination, count int64, results interface{}) error {
	return c.JSON(fiber.Map{
		"count":     count,
		"page":      p.Page,
		"page_size": p.PageSize,
		"results":   results,
	})
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// requestLanguage resolves the content language for a request: the "lang"
// query parameter wins, then the first Accept-Language entry. Unsupported
// codes fall back to the default language.
func requestLanguage(c *fiber.Ctx) string {
	lang := c.Query("lang")
	if lang == "" {
		accept := c.Get(fiber.HeaderAcceptLanguage)
		if accept != "" {
			first := strings.TrimSpace(strings.Split(accept, ",")[0])
			if i := strings.IndexAny(first, ";-"); i > 0 {
				first = first[:i]
			}
			lang = first
		}
	}
	lang = strings.ToLower(lang)
	if !models.IsSupportedLanguage(lang) {
		return models.DefaultLanguage
	}
	return lang
}

// respondServiceError maps service-layer errors onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "DUPLICATE_RESOURCE":
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
