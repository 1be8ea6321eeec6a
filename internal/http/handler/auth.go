package handler

import (
	"github.com/gofiber/fiber/v2"

	"gedo/internal/http/middleware"
	"gedo/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user.
//
// @Summary  Log in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} service.LoginResult
// @Failure  401 {object} errorPayload
// @Failure  429 {object} blockedPayload
// @Router   /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}

		res, err := svc.Login(c.UserContext(), req.Email, req.Password, c.IP(), c.Get(fiber.HeaderUserAgent))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Me returns the authenticated user.
//
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} model.User
// @Router   /api/auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Me(c.UserContext(), middleware.CurrentUser(c).ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}
