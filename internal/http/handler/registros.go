package handler

import (
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gedo/internal/http/middleware"
	"gedo/internal/service"
	"gedo/internal/upload"
)

const (
	dateLayout      = "2006-01-02"
	attachmentField = "anexo"
)

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// formValue returns the first value of key and whether the key was sent.
func formValue(form *multipart.Form, key string) (string, bool) {
	v, ok := form.Value[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
}

// openAttachment returns the uploaded anexo, or nil when none was sent. The
// caller closes the returned file.
func openAttachment(form *multipart.Form) (*upload.File, multipart.File, error) {
	files := form.File[attachmentField]
	if len(files) == 0 {
		return nil, nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &upload.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Content:     f,
	}, f, nil
}

// ListRegistros lists records with filters and pagination.
//
// @Summary  List registros
// @Tags     registros
// @Produce  json
// @Security BearerAuth
// @Param    obra_id       query string false "obra id"
// @Param    tipo_registro query string false "record type"
// @Param    data_inicio   query string false "YYYY-MM-DD"
// @Param    data_fim      query string false "YYYY-MM-DD"
// @Param    autor_id      query string false "author id"
// @Param    palavra_chave query string false "matches titulo or descricao"
// @Param    codigo_numero query string false "matches part of the record code"
// @Param    ordenacao     query string false "data_desc, data_asc, titulo_asc or titulo_desc"
// @Param    page          query int    false "page (default 1)"
// @Param    per_page      query int    false "page size (default 20, max 100)"
// @Success  200 {object} service.RegistroListResult
// @Router   /api/registros [get]
// @Router   /api/pesquisa [get]
func ListRegistros(svc service.RegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.RegistroListQuery{
			ObraID:       c.Query("obra_id"),
			TipoRegistro: c.Query("tipo_registro"),
			AutorID:      c.Query("autor_id"),
			PalavraChave: c.Query("palavra_chave"),
			CodigoNumero: c.Query("codigo_numero"),
			Ordenacao:    c.Query("ordenacao"),
		}
		var err error
		if q.Page, err = strconv.Atoi(c.Query("page", "1")); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		if q.PerPage, err = strconv.Atoi(c.Query("per_page", "20")); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PER_PAGE", "invalid per_page")
		}
		if q.ObraID != "" && !validID(q.ObraID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid obra_id format")
		}
		if q.AutorID != "" && !validID(q.AutorID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid autor_id format")
		}
		if s := c.Query("data_inicio"); s != "" {
			d, err := parseDate(s)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "formato de data_inicio inválido (use YYYY-MM-DD)")
			}
			q.DataInicio = &d
		}
		if s := c.Query("data_fim"); s != "" {
			d, err := parseDate(s)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "formato de data_fim inválido (use YYYY-MM-DD)")
			}
			q.DataFim = &d
		}

		res, err := svc.List(c.UserContext(), middleware.CurrentUser(c), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetRegistro returns one record.
//
// @Summary  Get registro
// @Tags     registros
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "registro id"
// @Success  200 {object} model.Registro
// @Failure  403 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/registros/{id} [get]
func GetRegistro(svc service.RegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		reg, err := svc.Get(c.UserContext(), middleware.CurrentUser(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(reg)
	}
}

// CreateRegistro creates a record (multipart/form-data, file field: anexo).
//
// @Summary  Create registro
// @Tags     registros
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    titulo        formData string true  "title"
// @Param    tipo_registro formData string true  "record type"
// @Param    descricao     formData string false "description"
// @Param    codigo_numero formData string false "code"
// @Param    data_registro formData string false "YYYY-MM-DD"
// @Param    obra_id       formData string false "obra id (required for admins)"
// @Param    anexo         formData file   false "attachment"
// @Success  201 {object} model.Registro
// @Failure  400 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/registros [post]
func CreateRegistro(svc service.RegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart/form-data is required")
		}

		in := service.CreateRegistroInput{}
		in.Titulo, _ = formValue(form, "titulo")
		in.TipoRegistro, _ = formValue(form, "tipo_registro")
		in.Descricao, _ = formValue(form, "descricao")
		in.CodigoNumero, _ = formValue(form, "codigo_numero")
		in.ObraID, _ = formValue(form, "obra_id")
		if in.ObraID != "" && !validID(in.ObraID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid obra_id format")
		}
		if s, ok := formValue(form, "data_registro"); ok && s != "" {
			if in.DataRegistro, err = parseDate(s); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "formato de data_registro inválido (use YYYY-MM-DD)")
			}
		}

		anexo, f, err := openAttachment(form)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		if f != nil {
			defer f.Close()
		}
		in.Anexo = anexo

		reg, err := svc.Create(c.UserContext(), middleware.CurrentUser(c), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(reg)
	}
}

// UpdateRegistro changes the fields present in the form and optionally
// replaces the attachment.
//
// @Summary  Update registro
// @Tags     registros
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    id    path     string true  "registro id"
// @Param    anexo formData file   false "new attachment"
// @Success  200 {object} model.Registro
// @Failure  403 {object} errorPayload
// @Router   /api/registros/{id} [put]
func UpdateRegistro(svc service.RegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart/form-data is required")
		}

		in := service.UpdateRegistroInput{}
		if v, ok := formValue(form, "titulo"); ok {
			in.Titulo = &v
		}
		if v, ok := formValue(form, "tipo_registro"); ok {
			in.TipoRegistro = &v
		}
		if v, ok := formValue(form, "descricao"); ok {
			in.Descricao = &v
		}
		if v, ok := formValue(form, "codigo_numero"); ok {
			in.CodigoNumero = &v
		}
		if v, ok := formValue(form, "data_registro"); ok {
			d, err := parseDate(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "formato de data_registro inválido (use YYYY-MM-DD)")
			}
			in.DataRegistro = &d
		}

		anexo, f, err := openAttachment(form)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		if f != nil {
			defer f.Close()
		}
		in.Anexo = anexo

		reg, err := svc.Update(c.UserContext(), middleware.CurrentUser(c), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(reg)
	}
}

// DeleteRegistro deletes a record and its attachment.
//
// @Summary  Delete registro
// @Tags     registros
// @Security BearerAuth
// @Param    id path string true "registro id"
// @Success  204
// @Router   /api/registros/{id} [delete]
func DeleteRegistro(svc service.RegistroService) fiber.Handler {
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

// DownloadAttachment streams a record's attachment.
//
// @Summary  Download attachment
// @Tags     registros
// @Produce  octet-stream
// @Security BearerAuth
// @Param    id path string true "registro id"
// @Success  200 {file} binary
// @Failure  404 {object} errorPayload
// @Router   /api/registros/{id}/download [get]
func DownloadAttachment(svc service.RegistroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		dl, err := svc.OpenAttachment(c.UserContext(), middleware.CurrentUser(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(dl.Filename)
		c.Set(fiber.HeaderContentType, dl.ContentType)
		// The response writer closes Body once it has been streamed.
		return c.SendStream(dl.Body, int(dl.Size))
	}
}
