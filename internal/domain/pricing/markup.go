package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

var (
	cien = decimal.NewFromInt(100)
	uno  = decimal.NewFromInt(1)

	// divisorIVACanal quita el IVA de las comisiones que cobra el canal de
	// venta. Es una constante del canal: sigue siendo 1.21 aunque el producto
	// tribute IVA 10.5.
	divisorIVACanal = decimal.RequireFromString("1.21")
)

// TransactionInput entradas de un cálculo de markup. Propiedad del caller
// durante el cálculo; el motor no la retiene ni la muta.
type TransactionInput struct {
	Costo         decimal.Decimal
	MonedaCosto   string          // ARS | USD
	IVA           decimal.Decimal // porcentaje: 10.5 o 21
	CostoEnvio    decimal.Decimal // ARS, >= 0
	PrecioFinal   decimal.Decimal // ARS, IVA incluido
	TipoCambio    decimal.Decimal // ARS por USD (venta)
	GrupoComision int
}

// MarkupResult salidas derivadas del cálculo. Montos redondeados a centavos.
type MarkupResult struct {
	CostoARS      decimal.Decimal
	ComisionTotal decimal.Decimal
	Limpio        decimal.Decimal // precio sin IVA - envío - comisiones
	MarkupPct     decimal.Decimal
}

// Calculate computa el markup a partir de un snapshot de esquema y constantes.
// Función pura: mismas entradas y snapshots producen siempre el mismo resultado,
// y es segura para invocación concurrente sobre versiones inmutables.
//
// Devuelve (nil, nil) cuando la entrada está incompleta (costo, precio o
// comisión resuelta en cero): es el estado "formulario sin completar" de la
// calculadora, no un error.
//
// Cada monto intermedio se redondea a 2 decimales al calcularse; el vector de
// referencia del canal solo se reproduce operando sobre montos redondeados.
func Calculate(in TransactionInput, esquema *entity.CommissionSchedule, constantes *entity.PricingConstants, cuotas int) (*MarkupResult, error) {
	if esquema == nil || constantes == nil {
		return nil, domain.ErrInvalidInput
	}
	if !entity.EsCuotasValidas(cuotas) {
		return nil, domain.ErrInvalidInput
	}
	if in.Costo.IsNegative() || in.PrecioFinal.IsNegative() || in.CostoEnvio.IsNegative() || in.TipoCambio.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Entrada incompleta: la calculadora todavía no tiene nada que mostrar.
	if in.Costo.IsZero() || in.PrecioFinal.IsZero() {
		return nil, nil
	}

	// 1. Costo a pesos (el tipo de cambio solo pesa si el costo está en USD).
	costoARS := in.Costo
	if in.MonedaCosto == entity.MonedaUSD {
		costoARS = in.Costo.Mul(in.TipoCambio)
	}
	costoARS = costoARS.Round(2)
	if costoARS.IsZero() {
		// Costo en USD sin tipo de cambio cargado: incompleto, no dividible.
		return nil, nil
	}

	// 2. Precio sin IVA (acá sí con la alícuota propia de la operación).
	precioSinIVA := in.PrecioFinal.Div(uno.Add(in.IVA.Div(cien))).Round(2)

	// 3. Tasa de comisión: base del grupo + adicional por cuotas.
	tasa := esquema.TasaParaGrupo(in.GrupoComision, cuotas)
	if tasa.IsZero() {
		return nil, nil
	}

	// 4. Comisión porcentual sobre el precio bruto, sin el IVA del canal.
	comisionBase := in.PrecioFinal.Mul(tasa).Div(cien).Div(divisorIVACanal).Round(2)

	// 5-6. Adicional fijo por banda de precio (bandas cerradas-abiertas: el
	// umbral exacto pertenece a la banda superior). Desde MontoTier3 no hay
	// adicional y el envío corre por cuenta del canal.
	tier := tierParaPrecio(in.PrecioFinal, constantes).Round(2)
	comisionConTier := comisionBase.Add(tier)

	// 7-8. Gastos varios sobre el precio sin IVA.
	varios := precioSinIVA.Mul(constantes.VariosPorcentaje).Div(cien).Round(2)
	comisionTotal := comisionConTier.Add(varios)

	// 9. Envío: se descuenta del limpio solo por debajo de MontoTier3.
	envioSinIVA := decimal.Zero
	if in.PrecioFinal.LessThan(constantes.MontoTier3) {
		envioSinIVA = in.CostoEnvio.Div(divisorIVACanal).Round(2)
	}

	// 10-11. Limpio y markup.
	limpio := precioSinIVA.Sub(envioSinIVA).Sub(comisionTotal)
	markup := limpio.Div(costoARS).Sub(uno).Mul(cien).Round(2)

	return &MarkupResult{
		CostoARS:      costoARS,
		ComisionTotal: comisionTotal,
		Limpio:        limpio,
		MarkupPct:     markup,
	}, nil
}

// tierParaPrecio selecciona el adicional fijo según la banda de precio,
// ya sin el IVA del canal.
func tierParaPrecio(precioFinal decimal.Decimal, c *entity.PricingConstants) decimal.Decimal {
	switch {
	case precioFinal.LessThan(c.MontoTier1):
		return c.ComisionTier1.Div(divisorIVACanal)
	case precioFinal.LessThan(c.MontoTier2):
		return c.ComisionTier2.Div(divisorIVACanal)
	case precioFinal.LessThan(c.MontoTier3):
		return c.ComisionTier3.Div(divisorIVACanal)
	default:
		return decimal.Zero
	}
}
