package middleware

import (
	"github.com/gofiber/fiber/v2"

	"gedo/internal/audit"
)

// AuditClient attaches the caller's IP and User-Agent to the request context
// so audit entries carry them.
func AuditClient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(audit.WithClient(c.UserContext(), c.IP(), c.Get(fiber.HeaderUserAgent)))
		return c.Next()
	}
}
