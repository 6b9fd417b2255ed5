package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
)

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// Los errores no clasificados se registran y responden 500 sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, body := classify(err)
	if status == fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().Err(err).
			Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	var unknown *domain.UnknownProductError
	switch {
	case errors.As(err, &unknown):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "UNKNOWN_PRODUCT", Error: unknown.Error()}
	case errors.Is(err, dto.ErrInvalidItemList):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Error: dto.ErrInvalidItemList.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCode):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_CODE", Error: domain.ErrInvalidCode.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMAIL_EXISTS", Error: "Email ya registrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "DUPLICATE", Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Error: "Credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "FORBIDDEN", Error: "Credenciales de administrador inválidas"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "Token inválido o sesión cerrada"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Error: "Recurso no encontrado"}
	case errors.Is(err, domain.ErrRenderingFailed):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "RENDER_FAILED", Error: "Error generando PDF", Detail: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Error: "Error interno"}
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Error: msg})
}

// ErrorHandler para fiber.Config: errores que escapan de los handlers (rutas inexistentes,
// panics recuperados, límites) también responden con dto.ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Error: fe.Message})
	}
	return writeError(c, err)
}
