package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	apppricing "github.com/jhoicas/comisiones-api/internal/application/pricing"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// CalculatorHandler maneja la calculadora de precios y la cotización.
type CalculatorHandler struct {
	uc    *apppricing.CalculateUseCase
	rates apppricing.ExchangeRateProvider // puede ser nil
}

// NewCalculatorHandler construye el handler de la calculadora.
func NewCalculatorHandler(uc *apppricing.CalculateUseCase, rates apppricing.ExchangeRateProvider) *CalculatorHandler {
	return &CalculatorHandler{uc: uc, rates: rates}
}

// Calculate godoc
// @Summary      Calcular comisión, limpio y markup
// @Tags         calculadora
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateRequest  true  "entradas del cálculo"
// @Success      200   {object}  dto.CalculateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/calculadora [post]
func (h *CalculatorHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.MonedaCosto != "" && in.MonedaCosto != entity.MonedaARS && in.MonedaCosto != entity.MonedaUSD {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "moneda_costo debe ser ARS o USD"})
	}

	out, err := h.uc.Calculate(c.Context(), apppricing.CalculateInput{
		Costo:         in.Costo,
		MonedaCosto:   in.MonedaCosto,
		IVA:           in.IVA,
		CostoEnvio:    in.CostoEnvio,
		PrecioFinal:   in.PrecioFinal,
		TipoCambio:    in.TipoCambio,
		GrupoComision: in.GrupoComision,
		Cuotas:        in.Cuotas,
		Guardar:       in.Guardar,
		UserID:        GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrSinVersionActiva) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_VERSION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.CalculateResponse{
		Incompleto:        out.Incompleto,
		Cuotario:          dto.ToInstallmentDTOs(out.Cuotario),
		SolverDegradado:   out.SolverDegradado,
		TipoCambioUsado:   out.TipoCambioUsado,
		EsquemaVersion:    out.EsquemaVersionID,
		ConstantesVersion: out.ConstantesVersionID,
		RegistroID:        out.RegistroID,
	}
	if out.Resultado != nil {
		resp.CostoARS = &out.Resultado.CostoARS
		resp.ComisionTotal = &out.Resultado.ComisionTotal
		resp.Limpio = &out.Resultado.Limpio
		resp.MarkupPct = &out.Resultado.MarkupPct
	}
	return c.JSON(resp)
}

// Cotizacion godoc
// @Summary      Cotización vigente del dólar oficial
// @Tags         calculadora
// @Produce      json
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/cotizacion [get]
func (h *CalculatorHandler) Cotizacion(c *fiber.Ctx) error {
	if h.rates == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NO_PROVIDER", Message: "proveedor de cotización no configurado"})
	}
	cot, err := h.rates.Cotizacion(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PROVIDER_DOWN", Message: "proveedor de cotización no disponible"})
	}
	return c.JSON(dto.CotizacionResponse{
		Compra: cot.Compra,
		Venta:  cot.Venta,
		Fecha:  cot.Fecha,
	})
}
