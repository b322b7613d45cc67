package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/domain"
)

// versionError mapea los errores del ciclo de vida de versiones a HTTP.
// Compartido por los handlers de comisiones y constantes.
func versionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidacion):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMotivoRequerido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MOTIVO_REQUERIDO", Message: err.Error()})
	case errors.Is(err, domain.ErrConflictoVersion):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VERSION_CONFLICT", Message: "otra edición concurrente modificó la cadena de versiones"})
	case errors.Is(err, domain.ErrVersionNoActiva):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VERSION_NOT_ACTIVE", Message: "la operación solo aplica a la versión activa"})
	case errors.Is(err, domain.ErrSinPredecesora):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_PREDECESSOR", Message: "no existe versión anterior para reactivar"})
	case errors.Is(err, domain.ErrSinVersionActiva):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_VERSION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "versión no encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
