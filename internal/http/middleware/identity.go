package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"docportal/internal/model"
)

// Headers carrying the caller identity. The service trusts them as supplied;
// authentication happens in front of it.
const (
	UserIDHeader    = "X-User-ID"
	UserNameHeader  = "X-User-Name"
	UserEmailHeader = "X-User-Email"
	UserRollHeader  = "X-User-Roll"
	UserRoleHeader  = "X-User-Role"

	// IdentityLocalKey is the Fiber locals key holding the caller identity.
	IdentityLocalKey = "identity"
)

// Identity reads the caller identity headers into locals. Requests without
// X-User-ID pass through anonymously. Values are copied out of the request
// buffer because stores keep them after the request ends.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := header(c, UserIDHeader)
		if id != "" {
			c.Locals(IdentityLocalKey, model.Identity{
				ID:         id,
				Name:       header(c, UserNameHeader),
				Email:      header(c, UserEmailHeader),
				RollNumber: header(c, UserRollHeader),
				Role:       model.Role(strings.ToLower(header(c, UserRoleHeader))),
			})
		}
		return c.Next()
	}
}

func header(c *fiber.Ctx, key string) string {
	return utils.CopyString(strings.TrimSpace(c.Get(key)))
}

// IdentityFrom returns the identity stored by Identity.
func IdentityFrom(c *fiber.Ctx) (model.Identity, bool) {
	id, ok := c.Locals(IdentityLocalKey).(model.Identity)
	return id, ok
}
