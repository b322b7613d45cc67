package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas admitidas para el costo del producto.
const (
	MonedaARS = "ARS"
	MonedaUSD = "USD"
)

// InstallmentPrice precio resuelto por el solver externo para una cantidad de
// cuotas. Estructura explícita con tags: nunca se persiste como mapa abierto.
type InstallmentPrice struct {
	Cuotas          int             `json:"cuotas"`
	ListaPrecioID   int             `json:"lista_precio_id"`
	Precio          decimal.Decimal `json:"precio"`
	ComisionBasePct decimal.Decimal `json:"comision_base_pct"`
	ComisionTotal   decimal.Decimal `json:"comision_total"`
	Limpio          decimal.Decimal `json:"limpio"`
	MarkupReal      decimal.Decimal `json:"markup_real"`
}

// CalculationRecord cálculo finalizado que el back office decide guardar:
// snapshot de entradas y salidas más el desglose de cuotas elegido.
type CalculationRecord struct {
	ID       string
	UserID   string
	CreadoEn time.Time

	// Entradas
	Costo         decimal.Decimal
	MonedaCosto   string          // ARS | USD
	IVA           decimal.Decimal // 10.5 o 21
	CostoEnvio    decimal.Decimal
	PrecioFinal   decimal.Decimal
	TipoCambio    decimal.Decimal // ARS por USD
	GrupoComision int
	Cuotas        int

	// Versiones usadas (trazabilidad del cálculo)
	EsquemaVersionID    string
	ConstantesVersionID string

	// Salidas
	CostoARS      decimal.Decimal
	ComisionTotal decimal.Decimal
	Limpio        decimal.Decimal
	MarkupPct     decimal.Decimal

	// Desglose de cuotas devuelto por el solver (puede estar vacío).
	Cuotario []InstallmentPrice
}
