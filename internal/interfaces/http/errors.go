package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lubricentro-api/internal/application/dto"
	"github.com/jhoicas/lubricentro-api/internal/domain"
)

// httpError status, código y mensaje que se devuelven al cliente.
type httpError struct {
	status  int
	code    string
	message string
	details any
}

// ErrorHandler único punto donde los errores de dominio se traducen a HTTP.
// En development el mensaje de los errores internos se expone tal cual.
func ErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		he := classify(err, development)
		ev := log.Warn()
		if he.status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", he.status).
			Str("code", he.code).
			Msg("request failed")
		return c.Status(he.status).JSON(dto.NewErrorResponse(he.code, he.message, he.details))
	}
}

func classify(err error, development bool) httpError {
	var (
		verr *domain.ValidationError
		derr *domain.Error
		ferr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		return httpError{fiber.StatusBadRequest, "VALIDATION_ERROR", "Datos de entrada inválidos", verr.Fields}
	case errors.As(err, &derr):
		return httpError{status: statusFor(derr.Kind), code: derr.Code, message: derr.Message}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return httpError{status: fiber.StatusUnauthorized, code: "INVALID_CREDENTIALS", message: "Email o contraseña incorrectos"}
	case errors.Is(err, domain.ErrExpiredToken):
		return httpError{status: fiber.StatusUnauthorized, code: "EXPIRED_TOKEN", message: "Token expirado"}
	case errors.Is(err, domain.ErrInvalidToken):
		return httpError{status: fiber.StatusUnauthorized, code: "INVALID_TOKEN", message: "Token inválido"}
	case errors.Is(err, domain.ErrSessionRevoked):
		return httpError{status: fiber.StatusUnauthorized, code: "SESSION_EXPIRED_OR_REVOKED", message: "Sesión expirada o revocada"}
	case errors.Is(err, domain.ErrUnauthorized):
		return httpError{status: fiber.StatusUnauthorized, code: "UNAUTHORIZED", message: "No autorizado"}
	case errors.Is(err, domain.ErrForbidden):
		return httpError{status: fiber.StatusForbidden, code: "FORBIDDEN", message: "No tiene permisos para esta operación"}
	case errors.Is(err, domain.ErrNotFound):
		return httpError{status: fiber.StatusNotFound, code: "NOT_FOUND", message: "Recurso no encontrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return httpError{status: fiber.StatusConflict, code: "DUPLICATE_ENTRY", message: "Registro duplicado"}
	case errors.Is(err, domain.ErrReferenced):
		return httpError{status: fiber.StatusConflict, code: "REFERENCED_RECORD", message: "El registro tiene datos asociados"}
	case errors.Is(err, domain.ErrInvalidInput):
		return httpError{status: fiber.StatusBadRequest, code: "VALIDATION_ERROR", message: "Datos de entrada inválidos"}
	case errors.Is(err, domain.ErrDatabaseUnavailable):
		return httpError{status: fiber.StatusServiceUnavailable, code: "DATABASE_CONNECTION_ERROR", message: "Error de conexión a la base de datos"}
	case errors.As(err, &ferr):
		return fromFiber(ferr)
	}
	msg := "Error interno del servidor"
	if development {
		msg = err.Error()
	}
	return httpError{status: fiber.StatusInternalServerError, code: "INTERNAL_SERVER_ERROR", message: msg}
}

func statusFor(kind error) int {
	switch kind {
	case domain.ErrNotFound:
		return fiber.StatusNotFound
	case domain.ErrDuplicate, domain.ErrReferenced:
		return fiber.StatusConflict
	case domain.ErrForbidden:
		return fiber.StatusForbidden
	case domain.ErrInvalidInput:
		return fiber.StatusBadRequest
	case domain.ErrUnauthorized, domain.ErrInvalidToken, domain.ErrExpiredToken, domain.ErrSessionRevoked, domain.ErrInvalidCredentials:
		return fiber.StatusUnauthorized
	case domain.ErrDatabaseUnavailable:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// fromFiber errores propios de fiber: rutas inexistentes, body inválido, rate limit.
func fromFiber(e *fiber.Error) httpError {
	switch e.Code {
	case fiber.StatusTooManyRequests:
		return httpError{status: e.Code, code: "RATE_LIMIT_EXCEEDED", message: "Demasiadas solicitudes, intente más tarde"}
	case fiber.StatusNotFound:
		return httpError{status: e.Code, code: "NOT_FOUND", message: "Ruta no encontrada"}
	case fiber.StatusMethodNotAllowed:
		return httpError{status: e.Code, code: "METHOD_NOT_ALLOWED", message: e.Message}
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return httpError{status: fiber.StatusBadRequest, code: "INVALID_BODY", message: "Cuerpo de la petición inválido"}
	case fiber.StatusRequestEntityTooLarge:
		return httpError{status: e.Code, code: "PAYLOAD_TOO_LARGE", message: e.Message}
	}
	return httpError{status: e.Code, code: "HTTP_ERROR", message: e.Message}
}
