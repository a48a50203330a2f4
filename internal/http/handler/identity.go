package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docportal/internal/http/middleware"
	"docportal/internal/model"
)

// caller returns the identity set by middleware.Identity, writing a 401 when there is none.
// The shared reviewer inbox id cannot be used as a caller id.
func caller(c *fiber.Ctx) (model.Identity, bool, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return model.Identity{}, false, writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "caller identity is required")
	}
	if id.ID == model.ReviewerAudience {
		return model.Identity{}, false, writeError(c, fiber.StatusForbidden, "UNAUTHORIZED", "caller id is reserved")
	}
	return id, true, nil
}

// pathID returns the :id parameter, writing a 400 when it is not a UUID.
func pathID(c *fiber.Ctx) (string, bool, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}
