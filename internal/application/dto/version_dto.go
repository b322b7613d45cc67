package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// FormatoFecha formato de fechas de vigencia en la API.
const FormatoFecha = "2006-01-02"

// ScheduleVersionRequest borrador de una nueva versión del esquema de comisiones.
type ScheduleVersionRequest struct {
	Nombre          string                  `json:"nombre"`
	Descripcion     string                  `json:"descripcion"`
	VigenteDesde    string                  `json:"vigente_desde"` // YYYY-MM-DD
	ComisionBase    map[int]decimal.Decimal `json:"comision_base"`
	AdicionalCuotas map[int]decimal.Decimal `json:"adicional_cuotas"`
}

// ToEntity arma la entidad borrador. La fecha inválida queda en cero y la
// rechaza el manager.
func (r ScheduleVersionRequest) ToEntity(userID string) *entity.CommissionSchedule {
	desde, _ := time.Parse(FormatoFecha, r.VigenteDesde)
	return &entity.CommissionSchedule{
		VersionMeta: entity.VersionMeta{
			Nombre:       r.Nombre,
			Descripcion:  r.Descripcion,
			VigenteDesde: desde,
			CreadoPor:    userID,
		},
		ComisionBase:    r.ComisionBase,
		AdicionalCuotas: r.AdicionalCuotas,
	}
}

// ScheduleVersionResponse versión del esquema para la API.
type ScheduleVersionResponse struct {
	ID              string                  `json:"id"`
	Nombre          string                  `json:"nombre"`
	Descripcion     string                  `json:"descripcion,omitempty"`
	VigenteDesde    time.Time               `json:"vigente_desde"`
	VigenteHasta    *time.Time              `json:"vigente_hasta,omitempty"`
	Activa          bool                    `json:"activa"`
	ComisionBase    map[int]decimal.Decimal `json:"comision_base"`
	AdicionalCuotas map[int]decimal.Decimal `json:"adicional_cuotas"`
}

// ToScheduleResponse mapea la entidad al DTO.
func ToScheduleResponse(s *entity.CommissionSchedule) *ScheduleVersionResponse {
	if s == nil {
		return nil
	}
	return &ScheduleVersionResponse{
		ID:              s.ID,
		Nombre:          s.Nombre,
		Descripcion:     s.Descripcion,
		VigenteDesde:    s.VigenteDesde,
		VigenteHasta:    s.VigenteHasta,
		Activa:          s.Activa(),
		ComisionBase:    s.ComisionBase,
		AdicionalCuotas: s.AdicionalCuotas,
	}
}

// ConstantsVersionRequest borrador de una nueva versión de constantes.
type ConstantsVersionRequest struct {
	Nombre                    string          `json:"nombre"`
	Descripcion               string          `json:"descripcion"`
	VigenteDesde              string          `json:"vigente_desde"` // YYYY-MM-DD
	MontoTier1                decimal.Decimal `json:"monto_tier1"`
	MontoTier2                decimal.Decimal `json:"monto_tier2"`
	MontoTier3                decimal.Decimal `json:"monto_tier3"`
	ComisionTier1             decimal.Decimal `json:"comision_tier1"`
	ComisionTier2             decimal.Decimal `json:"comision_tier2"`
	ComisionTier3             decimal.Decimal `json:"comision_tier3"`
	VariosPorcentaje          decimal.Decimal `json:"varios_porcentaje"`
	GrupoComisionDefault      int             `json:"grupo_comision_default"`
	MarkupAdicionalCuotas     decimal.Decimal `json:"markup_adicional_cuotas"`
	ComisionTiendaNube        decimal.Decimal `json:"comision_tienda_nube"`
	ComisionTiendaNubeTarjeta decimal.Decimal `json:"comision_tienda_nube_tarjeta"`
}

// ToEntity arma la entidad borrador.
func (r ConstantsVersionRequest) ToEntity(userID string) *entity.PricingConstants {
	desde, _ := time.Parse(FormatoFecha, r.VigenteDesde)
	return &entity.PricingConstants{
		VersionMeta: entity.VersionMeta{
			Nombre:       r.Nombre,
			Descripcion:  r.Descripcion,
			VigenteDesde: desde,
			CreadoPor:    userID,
		},
		MontoTier1:                r.MontoTier1,
		MontoTier2:                r.MontoTier2,
		MontoTier3:                r.MontoTier3,
		ComisionTier1:             r.ComisionTier1,
		ComisionTier2:             r.ComisionTier2,
		ComisionTier3:             r.ComisionTier3,
		VariosPorcentaje:          r.VariosPorcentaje,
		GrupoComisionDefault:      r.GrupoComisionDefault,
		MarkupAdicionalCuotas:     r.MarkupAdicionalCuotas,
		ComisionTiendaNube:        r.ComisionTiendaNube,
		ComisionTiendaNubeTarjeta: r.ComisionTiendaNubeTarjeta,
	}
}

// ConstantsVersionResponse versión de constantes para la API.
type ConstantsVersionResponse struct {
	ID                        string          `json:"id"`
	Nombre                    string          `json:"nombre"`
	Descripcion               string          `json:"descripcion,omitempty"`
	VigenteDesde              time.Time       `json:"vigente_desde"`
	VigenteHasta              *time.Time      `json:"vigente_hasta,omitempty"`
	Activa                    bool            `json:"activa"`
	MontoTier1                decimal.Decimal `json:"monto_tier1"`
	MontoTier2                decimal.Decimal `json:"monto_tier2"`
	MontoTier3                decimal.Decimal `json:"monto_tier3"`
	ComisionTier1             decimal.Decimal `json:"comision_tier1"`
	ComisionTier2             decimal.Decimal `json:"comision_tier2"`
	ComisionTier3             decimal.Decimal `json:"comision_tier3"`
	VariosPorcentaje          decimal.Decimal `json:"varios_porcentaje"`
	GrupoComisionDefault      int             `json:"grupo_comision_default"`
	MarkupAdicionalCuotas     decimal.Decimal `json:"markup_adicional_cuotas"`
	ComisionTiendaNube        decimal.Decimal `json:"comision_tienda_nube"`
	ComisionTiendaNubeTarjeta decimal.Decimal `json:"comision_tienda_nube_tarjeta"`
}

// ToConstantsResponse mapea la entidad al DTO.
func ToConstantsResponse(c *entity.PricingConstants) *ConstantsVersionResponse {
	if c == nil {
		return nil
	}
	return &ConstantsVersionResponse{
		ID:                        c.ID,
		Nombre:                    c.Nombre,
		Descripcion:               c.Descripcion,
		VigenteDesde:              c.VigenteDesde,
		VigenteHasta:              c.VigenteHasta,
		Activa:                    c.Activa(),
		MontoTier1:                c.MontoTier1,
		MontoTier2:                c.MontoTier2,
		MontoTier3:                c.MontoTier3,
		ComisionTier1:             c.ComisionTier1,
		ComisionTier2:             c.ComisionTier2,
		ComisionTier3:             c.ComisionTier3,
		VariosPorcentaje:          c.VariosPorcentaje,
		GrupoComisionDefault:      c.GrupoComisionDefault,
		MarkupAdicionalCuotas:     c.MarkupAdicionalCuotas,
		ComisionTiendaNube:        c.ComisionTiendaNube,
		ComisionTiendaNubeTarjeta: c.ComisionTiendaNubeTarjeta,
	}
}

// DeleteVersionRequest motivo de auditoría para eliminar la versión activa.
type DeleteVersionRequest struct {
	Motivo string `json:"motivo"`
}

// MatrixRowResponse fila de la matriz de comisiones de un grupo.
type MatrixRowResponse struct {
	Grupo  int                     `json:"grupo"`
	Lista4 decimal.Decimal         `json:"lista4"`
	Cuotas map[int]decimal.Decimal `json:"cuotas"`
}

// MatrixResponse matriz de comisiones de una versión (activa o histórica).
type MatrixResponse struct {
	VersionID string              `json:"version_id"`
	Nombre    string              `json:"nombre"`
	Filas     []MatrixRowResponse `json:"filas"`
}
