package handler

import (
	"github.com/gofiber/fiber/v2"

	"gedo/internal/http/middleware"
	"gedo/internal/service"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"tipo_usuario"`
	ObraID   string `json:"obra_id"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"tipo_usuario"`
	ObraID   *string `json:"obra_id"`
	Active   *bool   `json:"ativo"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type adminChangePasswordRequest struct {
	UserID      string `json:"user_id"`
	NewPassword string `json:"new_password"`
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
}

// ListUsers lists every account.
//
// @Summary  List users
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.User
// @Failure  403 {object} errorPayload
// @Router   /api/auth/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(users)
	}
}

// GetUser returns one account.
//
// @Summary  Get user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "user id"
// @Success  200 {object} model.User
// @Failure  404 {object} errorPayload
// @Router   /api/auth/users/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.Get(c.UserContext(), middleware.CurrentUser(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// CreateUser registers an account that must change its password on first login.
//
// @Summary  Create user
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body createUserRequest true "new account"
// @Success  201 {object} model.User
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /api/auth/register [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if req.ObraID != "" && !validID(req.ObraID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid obra_id format")
		}
		u, err := svc.Create(c.UserContext(), middleware.CurrentUser(c), service.CreateUserInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			ObraID:   req.ObraID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// UpdateUser changes the fields present in the body.
//
// @Summary  Update user
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string            true "user id"
// @Param    body body updateUserRequest true "fields to change"
// @Success  200 {object} model.User
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /api/auth/users/{id} [put]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req updateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if req.ObraID != nil && *req.ObraID != "" && !validID(*req.ObraID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid obra_id format")
		}
		u, err := svc.Update(c.UserContext(), middleware.CurrentUser(c), id, service.UpdateUserInput{
			Username: req.Username,
			Email:    req.Email,
			Role:     req.Role,
			ObraID:   req.ObraID,
			Active:   req.Active,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// DeleteUser removes an account without records.
//
// @Summary  Delete user
// @Tags     users
// @Security BearerAuth
// @Param    id path string true "user id"
// @Success  204
// @Failure  409 {object} errorPayload
// @Router   /api/auth/users/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ChangePassword replaces the caller's own password.
//
// @Summary  Change own password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body changePasswordRequest true "current and new password"
// @Success  200 {object} service.PasswordStatus
// @Failure  400 {object} errorPayload
// @Router   /api/auth/change-password [post]
func ChangePassword(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req changePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		st, err := svc.ChangePassword(c.UserContext(), middleware.CurrentUser(c), req.CurrentPassword, req.NewPassword)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}

// AdminChangePassword resets a standard user's password.
//
// @Summary  Reset user password
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body adminChangePasswordRequest true "target and new password"
// @Success  200 {object} model.User
// @Failure  403 {object} errorPayload
// @Router   /api/auth/admin/change-user-password [post]
func AdminChangePassword(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req adminChangePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		if !validID(req.UserID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid user_id format")
		}
		u, err := svc.AdminChangePassword(c.UserContext(), middleware.CurrentUser(c), req.UserID, req.NewPassword)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// PasswordStatus reports whether the caller must or may change the password.
//
// @Summary  Password status
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} service.PasswordStatus
// @Router   /api/auth/password-status [get]
func PasswordStatus(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.PasswordStatus(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}
