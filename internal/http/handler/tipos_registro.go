package handler

import (
	"github.com/gofiber/fiber/v2"

	"gedo/internal/http/middleware"
	"gedo/internal/service"
)

type tipoRegistroRequest struct {
	Nome      *string `json:"nome"`
	Descricao *string `json:"descricao"`
	Ativo     *bool   `json:"ativo"`
}

// ListTiposRegistro lists the active record types.
//
// @Summary  List tipos de registro
// @Tags     tipos-registro
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.TipoRegistro
// @Router   /api/tipos-registro [get]
func ListTiposRegistro(svc service.TipoRegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tipos, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tipos)
	}
}

// ListAllTiposRegistro lists the catalogue including inactive entries.
//
// @Summary  List every tipo de registro
// @Tags     tipos-registro
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.TipoRegistro
// @Failure  403 {object} errorPayload
// @Router   /api/tipos-registro/all [get]
func ListAllTiposRegistro(svc service.TipoRegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tipos, err := svc.ListAll(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tipos)
	}
}

// @Summary  Get tipo de registro
// @Tags     tipos-registro
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "tipo id"
// @Success  200 {object} model.TipoRegistro
// @Failure  404 {object} errorPayload
// @Router   /api/tipos-registro/{id} [get]
func GetTipoRegistro(svc service.TipoRegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		t, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(t)
	}
}

// @Summary  Create tipo de registro
// @Tags     tipos-registro
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body tipoRegistroRequest true "tipo"
// @Success  201 {object} model.TipoRegistro
// @Failure  409 {object} errorPayload
// @Router   /api/tipos-registro [post]
func CreateTipoRegistro(svc service.TipoRegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req tipoRegistroRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		t, err := svc.Create(c.UserContext(), middleware.CurrentUser(c), deref(req.Nome), deref(req.Descricao))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// UpdateTipoRegistro renames, describes or (de)activates a type. A rename is
// applied to the existing records too.
//
// @Summary  Update tipo de registro
// @Tags     tipos-registro
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string              true "tipo id"
// @Param    body body tipoRegistroRequest true "fields to change"
// @Success  200 {object} model.TipoRegistro
// @Router   /api/tipos-registro/{id} [put]
func UpdateTipoRegistro(svc service.TipoRegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req tipoRegistroRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		t, err := svc.Update(c.UserContext(), middleware.CurrentUser(c), id, service.TipoRegistroPatch{
			Nome:      req.Nome,
			Descricao: req.Descricao,
			Ativo:     req.Ativo,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(t)
	}
}

// @Summary  Delete tipo de registro
// @Tags     tipos-registro
// @Security BearerAuth
// @Param    id path string true "tipo id"
// @Success  204
// @Failure  409 {object} errorPayload
// @Router   /api/tipos-registro/{id} [delete]
func DeleteTipoRegistro(svc service.TipoRegistroService) fiber.Handler {
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
