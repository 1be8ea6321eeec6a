package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"gedo/internal/http/middleware"
	"gedo/internal/service"
)

// ListObras lists the obras visible to the caller.
//
// @Summary  List obras
// @Tags     obras
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.Obra
// @Router   /api/obras [get]
func ListObras(svc service.ObraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		obras, err := svc.List(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(obras)
	}
}

// GetObra returns one obra.
//
// @Summary  Get obra
// @Tags     obras
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "obra id"
// @Success  200 {object} model.Obra
// @Failure  403 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/obras/{id} [get]
func GetObra(svc service.ObraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		o, err := svc.Get(c.UserContext(), middleware.CurrentUser(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(o)
	}
}

type obraRequest struct {
	Nome                      *string `json:"nome"`
	Descricao                 *string `json:"descricao"`
	Codigo                    *string `json:"codigo"`
	Cliente                   *string `json:"cliente"`
	DataInicio                *string `json:"data_inicio"`
	DataTermino               *string `json:"data_termino"`
	ResponsavelTecnico        *string `json:"responsavel_tecnico"`
	ResponsavelAdministrativo *string `json:"responsavel_administrativo"`
	Localizacao               *string `json:"localizacao"`
	Status                    *string `json:"status"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// dates parses the optional start and end dates of the body.
func (r obraRequest) dates() (inicio, termino *time.Time, msg string) {
	if r.DataInicio != nil && *r.DataInicio != "" {
		d, err := parseDate(*r.DataInicio)
		if err != nil {
			return nil, nil, "formato de data_inicio inválido (use YYYY-MM-DD)"
		}
		inicio = &d
	}
	if r.DataTermino != nil && *r.DataTermino != "" {
		d, err := parseDate(*r.DataTermino)
		if err != nil {
			return nil, nil, "formato de data_termino inválido (use YYYY-MM-DD)"
		}
		termino = &d
	}
	return inicio, termino, ""
}

// CreateObra registers a construction site.
//
// @Summary  Create obra
// @Tags     obras
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body obraRequest true "obra"
// @Success  201 {object} model.Obra
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /api/obras [post]
func CreateObra(svc service.ObraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req obraRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		inicio, termino, msg := req.dates()
		if msg != "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
		}
		o, err := svc.Create(c.UserContext(), middleware.CurrentUser(c), service.ObraInput{
			Nome:                      deref(req.Nome),
			Descricao:                 deref(req.Descricao),
			Codigo:                    deref(req.Codigo),
			Cliente:                   deref(req.Cliente),
			DataInicio:                inicio,
			DataTermino:               termino,
			ResponsavelTecnico:        deref(req.ResponsavelTecnico),
			ResponsavelAdministrativo: deref(req.ResponsavelAdministrativo),
			Localizacao:               deref(req.Localizacao),
			Status:                    deref(req.Status),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(o)
	}
}

// UpdateObra changes the fields present in the body.
//
// @Summary  Update obra
// @Tags     obras
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string      true "obra id"
// @Param    body body obraRequest true "fields to change"
// @Success  200 {object} model.Obra
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/obras/{id} [put]
func UpdateObra(svc service.ObraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req obraRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		inicio, termino, msg := req.dates()
		if msg != "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
		}
		o, err := svc.Update(c.UserContext(), middleware.CurrentUser(c), id, service.ObraPatch{
			Nome:                      req.Nome,
			Descricao:                 req.Descricao,
			Codigo:                    req.Codigo,
			Cliente:                   req.Cliente,
			DataInicio:                inicio,
			DataTermino:               termino,
			ResponsavelTecnico:        req.ResponsavelTecnico,
			ResponsavelAdministrativo: req.ResponsavelAdministrativo,
			Localizacao:               req.Localizacao,
			Status:                    req.Status,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(o)
	}
}

// DeleteObra removes an obra without users or records.
//
// @Summary  Delete obra
// @Tags     obras
// @Security BearerAuth
// @Param    id path string true "obra id"
// @Success  204
// @Failure  409 {object} errorPayload
// @Router   /api/obras/{id} [delete]
func DeleteObra(svc service.ObraService) fiber.Handler {
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
