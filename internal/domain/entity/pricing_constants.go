package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain"
)

// PricingConstants versión de las constantes de precios: umbrales de tiers en
// ARS, comisiones fijas por tier, porcentaje de varios, grupo por defecto y
// ajustes del canal (cuotas, Tienda Nube). Misma vigencia por fechas que el
// esquema de comisiones.
type PricingConstants struct {
	VersionMeta

	// Umbrales de precio final (ARS) que delimitan los tiers. Deben ser
	// estrictamente crecientes: MontoTier1 < MontoTier2 < MontoTier3.
	MontoTier1 decimal.Decimal
	MontoTier2 decimal.Decimal
	MontoTier3 decimal.Decimal

	// Comisión fija (ARS, IVA incluido) que se suma según la banda de precio.
	ComisionTier1 decimal.Decimal
	ComisionTier2 decimal.Decimal
	ComisionTier3 decimal.Decimal

	// VariosPorcentaje porcentaje de gastos varios sobre el precio sin IVA.
	VariosPorcentaje decimal.Decimal

	// GrupoComisionDefault grupo preseleccionado en la calculadora.
	GrupoComisionDefault int

	// MarkupAdicionalCuotas puntos de markup extra exigidos al vender en cuotas.
	MarkupAdicionalCuotas decimal.Decimal

	// Comisiones fijas del canal Tienda Nube (variante tarjeta incluida).
	ComisionTiendaNube        decimal.Decimal
	ComisionTiendaNubeTarjeta decimal.Decimal
}

// Meta devuelve los metadatos de vigencia (puerto para el versionado).
func (c *PricingConstants) Meta() *VersionMeta {
	return &c.VersionMeta
}

// TiersCrecientes valida MontoTier1 < MontoTier2 < MontoTier3.
func (c *PricingConstants) TiersCrecientes() bool {
	return c.MontoTier1.LessThan(c.MontoTier2) && c.MontoTier2.LessThan(c.MontoTier3)
}

// Validar chequea la consistencia interna del borrador antes de persistirlo.
func (c *PricingConstants) Validar() error {
	if !c.TiersCrecientes() {
		return fmt.Errorf("%w: los umbrales de tier deben ser estrictamente crecientes", domain.ErrValidacion)
	}
	for _, m := range []decimal.Decimal{c.ComisionTier1, c.ComisionTier2, c.ComisionTier3, c.VariosPorcentaje, c.MarkupAdicionalCuotas, c.ComisionTiendaNube, c.ComisionTiendaNubeTarjeta} {
		if m.IsNegative() {
			return fmt.Errorf("%w: las constantes no admiten montos negativos", domain.ErrValidacion)
		}
	}
	if c.GrupoComisionDefault <= 0 {
		return fmt.Errorf("%w: grupo de comisión por defecto inválido", domain.ErrValidacion)
	}
	return nil
}
