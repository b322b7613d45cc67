package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

// CalculationHandler maneja el historial de cálculos guardados.
type CalculationHandler struct {
	repo repository.CalculationRepository
}

// NewCalculationHandler construye el handler del historial.
func NewCalculationHandler(repo repository.CalculationRepository) *CalculationHandler {
	return &CalculationHandler{repo: repo}
}

// List godoc
// @Summary      Historial de cálculos guardados, más reciente primero
// @Tags         calculos
// @Produce      json
// @Param        limit   query  int  false  "máximo de registros (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.CalculationRecordResponse
// @Router       /api/calculos [get]
func (h *CalculationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	registros, err := h.repo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.CalculationRecordResponse, len(registros))
	for i, r := range registros {
		out[i] = dto.ToCalculationResponse(r)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un cálculo guardado
// @Tags         calculos
// @Produce      json
// @Param        id  path  string  true  "ID del cálculo"
// @Success      200  {object}  dto.CalculationRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calculos/{id} [get]
func (h *CalculationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	rec, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cálculo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToCalculationResponse(rec))
}
