package handler

import (
	"github.com/gofiber/fiber/v2"

	"gedo/internal/config"
)

// multipartOverhead is allowed on top of the attachment limit for the other
// form fields and part headers.
const multipartOverhead = 1 << 20

// AppConfig builds the Fiber settings for the API. X-Forwarded-For is only
// honoured when the connection comes from one of cfg.TrustedProxies; the
// client address feeds the login lockout and the audit trail.
func AppConfig(cfg *config.AppConfig) fiber.Config {
	fc := fiber.Config{
		ErrorHandler:            ErrorHandler(),
		BodyLimit:               int(cfg.Upload.MaxContentLength) + multipartOverhead,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          cfg.TrustedProxies,
	}
	if len(cfg.TrustedProxies) > 0 {
		fc.ProxyHeader = fiber.HeaderXForwardedFor
	}
	return fc
}
