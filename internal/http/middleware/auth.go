package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gedo/internal/auth"
	"gedo/internal/model"
)

// UserLocalKey is the key under which the authenticated user is stored in
// Fiber's context locals.
const UserLocalKey = "user"

// TokenParser validates bearer tokens. *auth.Tokens implements it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// UserLoader fetches the account named by a token.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Unauthorized writes the 401 response. Handlers pass their error writer so
// the body matches the rest of the API.
type Unauthorized func(c *fiber.Ctx, code, message string) error

// RequireAuth authenticates the Authorization: Bearer token and stores the
// active user under UserLocalKey.
func RequireAuth(tokens TokenParser, users UserLoader, deny Unauthorized) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return deny(c, "TOKEN_MISSING", "token de acesso é obrigatório")
		}

		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return deny(c, "TOKEN_EXPIRED", "token expirado")
			}
			return deny(c, "TOKEN_INVALID", "token inválido")
		}

		u, err := users.FindByID(c.UserContext(), claims.UserID)
		if err != nil || u == nil || !u.Active {
			return deny(c, "TOKEN_INVALID", "usuário inválido ou inativo")
		}

		c.Locals(UserLocalKey, u)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

// RequireAdmin lets only administrators through. It runs after RequireAuth;
// deny writes the refusal.
func RequireAdmin(deny Unauthorized) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u == nil || !u.IsAdmin() {
			return deny(c, "ADMIN_REQUIRED", "acesso restrito a administradores")
		}
		return c.Next()
	}
}
