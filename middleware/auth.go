package middleware

import (
	"strings"

	"event-reward-system/models"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the identity the Gateway resolved from the
// caller's JWT and attaches it to the request context. The service trusts
// these headers as given; it performs no verification of its own.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		role := strings.ToUpper(strings.TrimSpace(c.Get("X-User-Role")))
		if role == "" {
			role = models.RoleUser
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", role)

		return c.Next()
	}
}

// RequireRoles rejects callers whose forwarded role is not in the allow list.
// Must run after UserContextMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = true
	}

	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		role, _ := c.Locals("user_role").(string)
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient role for this resource",
			})
		}

		return c.Next()
	}
}
