package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/comisiones-api/internal/domain/pricing"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/pdf"
)

// ScheduleHandler maneja las versiones del esquema de comisiones.
type ScheduleHandler struct {
	manager *versioning.Manager[*entity.CommissionSchedule]
	pdfGen  *pdf.MatrixPDFGenerator
}

// NewScheduleHandler construye el handler del esquema de comisiones.
func NewScheduleHandler(manager *versioning.Manager[*entity.CommissionSchedule], pdfGen *pdf.MatrixPDFGenerator) *ScheduleHandler {
	return &ScheduleHandler{manager: manager, pdfGen: pdfGen}
}

// Activa godoc
// @Summary      Versión activa del esquema de comisiones
// @Tags         comisiones
// @Produce      json
// @Success      200  {object}  dto.ScheduleVersionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comisiones/activa [get]
func (h *ScheduleHandler) Activa(c *fiber.Ctx) error {
	esquema, err := h.manager.GetActive(c.Context())
	if err != nil {
		return versionError(c, err)
	}
	return c.JSON(dto.ToScheduleResponse(esquema))
}

// Historial godoc
// @Summary      Cadena completa de versiones del esquema, más reciente primero
// @Tags         comisiones
// @Produce      json
// @Success      200  {array}  dto.ScheduleVersionResponse
// @Router       /api/comisiones/historial [get]
func (h *ScheduleHandler) Historial(c *fiber.Ctx) error {
	historial, err := h.manager.ListHistory(c.Context())
	if err != nil {
		return versionError(c, err)
	}
	out := make([]*dto.ScheduleVersionResponse, len(historial))
	for i, v := range historial {
		out[i] = dto.ToScheduleResponse(v)
	}
	return c.JSON(out)
}

// Matriz godoc
// @Summary      Matriz de comisiones de una versión (activa o histórica)
// @Tags         comisiones
// @Produce      json
// @Param        id  path  string  true  "ID de la versión"
// @Success      200  {object}  dto.MatrixResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comisiones/{id}/matriz [get]
func (h *ScheduleHandler) Matriz(c *fiber.Ctx) error {
	esquema, err := h.versionDesdeParams(c)
	if err != nil {
		return versionError(c, err)
	}

	matriz := domainpricing.ProjectMatrix(esquema)
	resp := dto.MatrixResponse{
		VersionID: esquema.ID,
		Nombre:    esquema.Nombre,
		Filas:     make([]dto.MatrixRowResponse, len(matriz)),
	}
	for i, fila := range matriz {
		resp.Filas[i] = dto.MatrixRowResponse{
			Grupo:  fila.Grupo,
			Lista4: fila.Lista4,
			Cuotas: fila.Cuotas,
		}
	}
	return c.JSON(resp)
}

// MatrizPDF godoc
// @Summary      Matriz de comisiones de una versión en PDF
// @Tags         comisiones
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la versión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comisiones/{id}/matriz/pdf [get]
func (h *ScheduleHandler) MatrizPDF(c *fiber.Ctx) error {
	esquema, err := h.versionDesdeParams(c)
	if err != nil {
		return versionError(c, err)
	}
	doc, err := h.pdfGen.GenerateMatrixPDF(esquema)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="matriz-comisiones.pdf"`)
	return c.Send(doc)
}

// Create godoc
// @Summary      Crear nueva versión del esquema (supersede la activa)
// @Tags         comisiones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleVersionRequest  true  "borrador de la versión"
// @Success      201   {object}  dto.ScheduleVersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/comisiones [post]
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var in dto.ScheduleVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	creada, err := h.manager.Create(c.Context(), in.ToEntity(GetUserID(c)))
	if err != nil {
		return versionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToScheduleResponse(creada))
}

// Update godoc
// @Summary      Editar la versión activa del esquema (no altera la vigencia)
// @Tags         comisiones
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la versión activa"
// @Param        body  body  dto.ScheduleVersionRequest  true  "campos editables"
// @Success      200   {object}  dto.ScheduleVersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/comisiones/{id} [put]
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ScheduleVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actualizada, err := h.manager.Update(c.Context(), id, func(s *entity.CommissionSchedule) {
		if in.Nombre != "" {
			s.Nombre = in.Nombre
		}
		if in.Descripcion != "" {
			s.Descripcion = in.Descripcion
		}
		if in.ComisionBase != nil {
			s.ComisionBase = in.ComisionBase
		}
		if in.AdicionalCuotas != nil {
			s.AdicionalCuotas = in.AdicionalCuotas
		}
	})
	if err != nil {
		return versionError(c, err)
	}
	return c.JSON(dto.ToScheduleResponse(actualizada))
}

// Delete godoc
// @Summary      Eliminar la versión activa y reactivar la anterior
// @Tags         comisiones
// @Accept       json
// @Param        id    path  string                    true  "ID de la versión activa"
// @Param        body  body  dto.DeleteVersionRequest  true  "motivo de auditoría"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/comisiones/{id} [delete]
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
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

// versionDesdeParams resuelve :id, aceptando "activa" como alias.
func (h *ScheduleHandler) versionDesdeParams(c *fiber.Ctx) (*entity.CommissionSchedule, error) {
	id := c.Params("id")
	if id == "activa" {
		return h.manager.GetActive(c.Context())
	}
	return h.manager.GetByID(c.Context(), id)
}
