package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/subastas-admin/internal/application/dto"
	"github.com/jhoicas/subastas-admin/internal/application/validation"
	"github.com/jhoicas/subastas-admin/internal/domain"
)

// writeError traduce un error de aplicación a la respuesta HTTP {code, message}.
func writeError(c *fiber.Ctx, err error) error {
	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		code := "VALIDATION"
		if errors.Is(err, domain.ErrUnsafeText) {
			code = "UNSAFE_TEXT"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: "datos inválidos", Fields: verrs.Map()})
	case errors.Is(err, domain.ErrUnsafeText):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSAFE_TEXT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNAUTHORIZED", Message: "el backend rechazó las credenciales del panel"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrFileTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_MEDIA", Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "el servicio remoto tardó demasiado; intenta de nuevo"})
	case errors.Is(err, domain.ErrServiceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: err.Error()})
	}
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
}

// listFailed respuesta cuando la carga del listado falló. El mensaje es el que guardó la consulta.
func listFailed(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: msg})
}

// toggleBody lee {value} opcional; un cuerpo vacío invierte el valor actual.
func toggleBody(c *fiber.Ctx) (*bool, error) {
	var in dto.ToggleRequest
	if len(c.Body()) == 0 {
		return nil, nil
	}
	if err := c.BodyParser(&in); err != nil {
		return nil, err
	}
	return in.Value, nil
}
