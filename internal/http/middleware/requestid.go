package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gedo/internal/audit"
)

const (
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey holds the id in fiber locals for the error envelope and logger.
	RequestIDLocalKey = "request_id"

	maxRequestIDLength = 128
)

// RequestID accepts a caller supplied X-Request-ID when it is short printable
// ASCII and otherwise issues a UUID. The id is echoed on the response, kept in
// locals and attached to the user context so audit entries carry it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.SetUserContext(audit.WithRequestID(c.UserContext(), id))
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
