package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// Cotizacion tipo de cambio informado por el proveedor externo.
// El motor usa la punta venta.
type Cotizacion struct {
	Compra decimal.Decimal `json:"compra"`
	Venta  decimal.Decimal `json:"venta"`
	Fecha  time.Time       `json:"fecha"`
}

// ExchangeRateProvider puerto del proveedor de tipo de cambio.
type ExchangeRateProvider interface {
	Cotizacion(ctx context.Context) (*Cotizacion, error)
}

// SolverRequest entradas del solver de precios por cuotas. El solver es una
// función remota: acá no se reproduce su algoritmo de convergencia.
type SolverRequest struct {
	Costo           decimal.Decimal `json:"costo"`
	MonedaCosto     string          `json:"moneda_costo"`
	IVA             decimal.Decimal `json:"iva"`
	CostoEnvio      decimal.Decimal `json:"costo_envio"`
	MarkupObjetivo  decimal.Decimal `json:"markup_objetivo"`
	TipoCambio      decimal.Decimal `json:"tipo_cambio"`
	GrupoComision   int             `json:"grupo_comision"`
	MarkupAdicional decimal.Decimal `json:"markup_adicional"`
}

// InstallmentSolver puerto del solver externo. Devuelve vacío ante entradas
// inválidas; los errores de red/timeout se traducen a ErrSolverNoDisponible.
type InstallmentSolver interface {
	Resolver(ctx context.Context, req SolverRequest) ([]entity.InstallmentPrice, error)
}
