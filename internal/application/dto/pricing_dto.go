package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// CalculateRequest entradas de la calculadora de markup.
type CalculateRequest struct {
	Costo         decimal.Decimal `json:"costo"`
	MonedaCosto   string          `json:"moneda_costo"` // ARS | USD
	IVA           decimal.Decimal `json:"iva"`          // 10.5 | 21
	CostoEnvio    decimal.Decimal `json:"costo_envio"`
	PrecioFinal   decimal.Decimal `json:"precio_final"` // ARS, IVA incluido
	TipoCambio    decimal.Decimal `json:"tipo_cambio"`  // 0 = consultar proveedor
	GrupoComision int             `json:"grupo_comision"`
	Cuotas        int             `json:"cuotas"`
	Guardar       bool            `json:"guardar"`
}

// CalculateResponse resultado de la calculadora. Con formulario incompleto
// solo viaja incompleto=true: la UI muestra los campos en blanco.
type CalculateResponse struct {
	Incompleto        bool                  `json:"incompleto"`
	CostoARS          *decimal.Decimal      `json:"costo_ars,omitempty"`
	ComisionTotal     *decimal.Decimal      `json:"comision_total,omitempty"`
	Limpio            *decimal.Decimal      `json:"limpio,omitempty"`
	MarkupPct         *decimal.Decimal      `json:"markup_pct,omitempty"`
	Cuotario          []InstallmentPriceDTO `json:"cuotario,omitempty"`
	SolverDegradado   bool                  `json:"solver_degradado,omitempty"`
	TipoCambioUsado   decimal.Decimal       `json:"tipo_cambio_usado"`
	EsquemaVersion    string                `json:"esquema_version"`
	ConstantesVersion string                `json:"constantes_version"`
	RegistroID        string                `json:"registro_id,omitempty"`
}

// InstallmentPriceDTO precio por cuotas del solver, estructura explícita.
type InstallmentPriceDTO struct {
	Cuotas          int             `json:"cuotas"`
	ListaPrecioID   int             `json:"lista_precio_id"`
	Precio          decimal.Decimal `json:"precio"`
	ComisionBasePct decimal.Decimal `json:"comision_base_pct"`
	ComisionTotal   decimal.Decimal `json:"comision_total"`
	Limpio          decimal.Decimal `json:"limpio"`
	MarkupReal      decimal.Decimal `json:"markup_real"`
}

// ToInstallmentDTOs mapea el desglose del solver.
func ToInstallmentDTOs(in []entity.InstallmentPrice) []InstallmentPriceDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]InstallmentPriceDTO, len(in))
	for i, p := range in {
		out[i] = InstallmentPriceDTO{
			Cuotas:          p.Cuotas,
			ListaPrecioID:   p.ListaPrecioID,
			Precio:          p.Precio,
			ComisionBasePct: p.ComisionBasePct,
			ComisionTotal:   p.ComisionTotal,
			Limpio:          p.Limpio,
			MarkupReal:      p.MarkupReal,
		}
	}
	return out
}

// CotizacionResponse tipo de cambio vigente.
type CotizacionResponse struct {
	Compra decimal.Decimal `json:"compra"`
	Venta  decimal.Decimal `json:"venta"`
	Fecha  time.Time       `json:"fecha"`
}

// CalculationRecordResponse cálculo guardado en el historial.
type CalculationRecordResponse struct {
	ID                string                `json:"id"`
	UserID            string                `json:"user_id"`
	CreadoEn          time.Time             `json:"creado_en"`
	Costo             decimal.Decimal       `json:"costo"`
	MonedaCosto       string                `json:"moneda_costo"`
	IVA               decimal.Decimal       `json:"iva"`
	CostoEnvio        decimal.Decimal       `json:"costo_envio"`
	PrecioFinal       decimal.Decimal       `json:"precio_final"`
	TipoCambio        decimal.Decimal       `json:"tipo_cambio"`
	GrupoComision     int                   `json:"grupo_comision"`
	Cuotas            int                   `json:"cuotas"`
	EsquemaVersion    string                `json:"esquema_version"`
	ConstantesVersion string                `json:"constantes_version"`
	CostoARS          decimal.Decimal       `json:"costo_ars"`
	ComisionTotal     decimal.Decimal       `json:"comision_total"`
	Limpio            decimal.Decimal       `json:"limpio"`
	MarkupPct         decimal.Decimal       `json:"markup_pct"`
	Cuotario          []InstallmentPriceDTO `json:"cuotario,omitempty"`
}

// ToCalculationResponse mapea el registro persistido al DTO.
func ToCalculationResponse(r *entity.CalculationRecord) *CalculationRecordResponse {
	if r == nil {
		return nil
	}
	return &CalculationRecordResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		CreadoEn:          r.CreadoEn,
		Costo:             r.Costo,
		MonedaCosto:       r.MonedaCosto,
		IVA:               r.IVA,
		CostoEnvio:        r.CostoEnvio,
		PrecioFinal:       r.PrecioFinal,
		TipoCambio:        r.TipoCambio,
		GrupoComision:     r.GrupoComision,
		Cuotas:            r.Cuotas,
		EsquemaVersion:    r.EsquemaVersionID,
		ConstantesVersion: r.ConstantesVersionID,
		CostoARS:          r.CostoARS,
		ComisionTotal:     r.ComisionTotal,
		Limpio:            r.Limpio,
		MarkupPct:         r.MarkupPct,
		Cuotario:          ToInstallmentDTOs(r.Cuotario),
	}
}
