package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// ConstantsHandler maneja las versiones de constantes de precios.
type ConstantsHandler struct {
	manager *versioning.Manager[*entity.PricingConstants]
}

// NewConstantsHandler construye el handler de constantes.
func NewConstantsHandler(manager *versioning.Manager[*entity.PricingConstants]) *ConstantsHandler {
	return &ConstantsHandler{manager: manager}
}

// Activa godoc
// @Summary      Versión activa de las constantes de precios
// @Tags         constantes
// @Produce      json
// @Success      200  {object}  dto.ConstantsVersionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/constantes/activa [get]
func (h *ConstantsHandler) Activa(c *fiber.Ctx) error {
	constantes, err := h.manager.GetActive(c.Context())
	if err != nil {
		return versionError(c, err)
	}
	return c.JSON(dto.ToConstantsResponse(constantes))
}

// Historial godoc
// @Summary      Cadena completa de versiones de constantes, más reciente primero
// @Tags         constantes
// @Produce      json
// @Success      200  {array}  dto.ConstantsVersionResponse
// @Router       /api/constantes/historial [get]
func (h *ConstantsHandler) Historial(c *fiber.Ctx) error {
	historial, err := h.manager.ListHistory(c.Context())
	if err != nil {
		return versionError(c, err)
	}
	out := make([]*dto.ConstantsVersionResponse, len(historial))
	for i, v := range historial {
		out[i] = dto.ToConstantsResponse(v)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear nueva versión de constantes (supersede la activa)
// @Tags         constantes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConstantsVersionRequest  true  "borrador de la versión"
// @Success      201   {object}  dto.ConstantsVersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/constantes [post]
func (h *ConstantsHandler) Create(c *fiber.Ctx) error {
	var in dto.ConstantsVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	creada, err := h.manager.Create(c.Context(), in.ToEntity(GetUserID(c)))
	if err != nil {
		return versionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToConstantsResponse(creada))
}

// Update godoc
// @Summary      Editar la versión activa de constantes (no altera la vigencia)
// @Tags         constantes
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la versión activa"
// @Param        body  body  dto.ConstantsVersionRequest  true  "campos editables"
// @Success      200   {object}  dto.ConstantsVersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/constantes/{id} [put]
func (h *ConstantsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ConstantsVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	nueva := in.ToEntity("")
	actualizada, err := h.manager.Update(c.Context(), id, func(pc *entity.PricingConstants) {
		if in.Nombre != "" {
			pc.Nombre = in.Nombre
		}
		if in.Descripcion != "" {
			pc.Descripcion = in.Descripcion
		}
		pc.MontoTier1 = nueva.MontoTier1
		pc.MontoTier2 = nueva.MontoTier2
		pc.MontoTier3 = nueva.MontoTier3
		pc.ComisionTier1 = nueva.ComisionTier1
		pc.ComisionTier2 = nueva.ComisionTier2
		pc.ComisionTier3 = nueva.ComisionTier3
		pc.VariosPorcentaje = nueva.VariosPorcentaje
		pc.GrupoComisionDefault = nueva.GrupoComisionDefault
		pc.MarkupAdicionalCuotas = nueva.MarkupAdicionalCuotas
		pc.ComisionTiendaNube = nueva.ComisionTiendaNube
		pc.ComisionTiendaNubeTarjeta = nueva.ComisionTiendaNubeTarjeta
	})
	if err != nil {
		return versionError(c, err)
	}
	return c.JSON(dto.ToConstantsResponse(actualizada))
}

// Delete godoc
// @Summary      Eliminar la versión activa y reactivar la anterior
// @Tags         constantes
// @Accept       json
// @Param        id    path  string                    true  "ID de la versión activa"
// @Param        body  body  dto.DeleteVersionRequest  true  "motivo de auditoría"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/constantes/{id} [delete]
func (h *ConstantsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.DeleteVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.manager.Delete(c.Context(), id, in.Motivo, GetUserID(c)); err != nil {
		return versionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
