package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gedo/internal/http/middleware"
	"gedo/internal/security"
	"gedo/internal/service"
	"gedo/internal/upload"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// blockedPayload is the 429 body sent while a client is locked out.
type blockedPayload struct {
	errorPayload
	RemainingSeconds int64 `json:"remaining_seconds"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return writeError(c, fiber.StatusUnauthorized, code, message)
}

func forbidden(c *fiber.Ctx, code, message string) error {
	return writeError(c, fiber.StatusForbidden, code, message)
}

// writeServiceError translates service, upload and lockout errors into HTTP
// responses. Anything unrecognized is logged and reported as a bare 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var rej *upload.RejectionError
	if errors.As(err, &rej) {
		return writeError(c, fiber.StatusBadRequest, rej.Code, rej.Reason)
	}
	if be, ok := security.IsBlockedError(err); ok {
		secs := be.RemainingSeconds()
		c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(secs, 10))
		return c.Status(fiber.StatusTooManyRequests).JSON(blockedPayload{
			errorPayload: errorPayload{
				RequestID: requestIDFromCtx(c),
				Error: errorEnvelope{
					Code:    "TOO_MANY_ATTEMPTS",
					Message: "muitas tentativas de login, tente novamente mais tarde",
				},
			},
			RemainingSeconds: secs,
		})
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	}
	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		return writeError(c, fiber.StatusConflict, "CONFLICT", cerr.Message)
	}

	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id é obrigatório")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "email ou senha inválidos")
	case errors.Is(err, service.ErrInactiveUser):
		return writeError(c, fiber.StatusUnauthorized, "USER_INACTIVE", "usuário inativo")
	case errors.Is(err, service.ErrAdminRequired):
		return writeError(c, fiber.StatusForbidden, "ADMIN_REQUIRED", "acesso restrito a administradores")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "acesso negado")
	case errors.Is(err, service.ErrObraSuspended):
		return writeError(c, fiber.StatusForbidden, "OBRA_SUSPENDED", "a obra está suspensa e não pode receber novos registros")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "registro não encontrado")
	case errors.Is(err, service.ErrObraNotFound):
		return writeError(c, fiber.StatusNotFound, "OBRA_NOT_FOUND", "obra não encontrada")
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, "USER_NOT_FOUND", "usuário não encontrado")
	case errors.Is(err, service.ErrTipoNotFound):
		return writeError(c, fiber.StatusNotFound, "TIPO_NOT_FOUND", "tipo de registro não encontrado")
	case errors.Is(err, service.ErrNoAttachment):
		return writeError(c, fiber.StatusNotFound, "ATTACHMENT_NOT_FOUND", "este registro não possui anexo")
	case errors.Is(err, service.ErrAttachmentMissing):
		return writeError(c, fiber.StatusNotFound, "ATTACHMENT_NOT_FOUND", "arquivo não encontrado no servidor")
	}

	slog.ErrorContext(c.UserContext(), "request failed",
		"request_id", requestIDFromCtx(c),
		"path", c.Path(),
		"error", err,
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, upload.CodeFileTooLarge, "arquivo muito grande")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
