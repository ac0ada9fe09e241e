package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/portal-notas/internal/application/dto"
	"github.com/jhoicas/portal-notas/internal/domain"
)

// HeaderPersistWarning marca respuestas cuyo cambio quedó solo en memoria.
const HeaderPersistWarning = "X-Persist-Warning"

// fail traduce un error de dominio a status + ErrorResponse.
func fail(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "LOGIN_EXISTS"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidBackup):
		return fiber.StatusUnprocessableEntity, "INVALID_BACKUP"
	case errors.Is(err, domain.ErrExternalService):
		return fiber.StatusServiceUnavailable, "EXTERNAL_SERVICE"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// reply responde body con status. Un ErrPersistence no es fallo: el cambio quedó aplicado
// en memoria y se avisa con HeaderPersistWarning.
func reply(c *fiber.Ctx, status int, body interface{}, err error) error {
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			return fail(c, err)
		}
		c.Set(HeaderPersistWarning, dto.PersistWarning)
	}
	if body == nil {
		return c.SendStatus(status)
	}
	return c.Status(status).JSON(body)
}

// sendFile envía un adjunto como descarga.
func sendFile(c *fiber.Ctx, att *dto.Attachment, err error) error {
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			return fail(c, err)
		}
		c.Set(HeaderPersistWarning, dto.PersistWarning)
	}
	c.Attachment(att.FileName)
	c.Set(fiber.HeaderContentType, att.ContentType)
	return c.Send(att.Content)
}
