package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/comisiones-api/internal/domain/pricing"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

// CalculateUseCase resuelve las versiones activas, invoca el motor puro y
// enriquece el resultado con el solver de cuotas cuando está disponible.
// El motor nunca espera por el solver: si falla o no responde a tiempo,
// se degrada al resultado de contado.
type CalculateUseCase struct {
	esquemas      *versioning.Manager[*entity.CommissionSchedule]
	constantes    *versioning.Manager[*entity.PricingConstants]
	rates         ExchangeRateProvider             // opcional
	solver        InstallmentSolver                // opcional
	calcRepo      repository.CalculationRepository // opcional
	solverTimeout time.Duration
	log           *logger.Logger
}

// NewCalculateUseCase construye el caso de uso. rates, solver y calcRepo
// pueden ser nil: la calculadora base funciona sin colaboradores externos.
func NewCalculateUseCase(
	esquemas *versioning.Manager[*entity.CommissionSchedule],
	constantes *versioning.Manager[*entity.PricingConstants],
	rates ExchangeRateProvider,
	solver InstallmentSolver,
	calcRepo repository.CalculationRepository,
	solverTimeout time.Duration,
	log *logger.Logger,
) *CalculateUseCase {
	if solverTimeout <= 0 {
		solverTimeout = 3 * time.Second
	}
	return &CalculateUseCase{
		esquemas:      esquemas,
		constantes:    constantes,
		rates:         rates,
		solver:        solver,
		calcRepo:      calcRepo,
		solverTimeout: solverTimeout,
		log:           log,
	}
}

// CalculateInput entradas del caso de uso (un cálculo, propiedad del caller).
type CalculateInput struct {
	Costo         decimal.Decimal
	MonedaCosto   string
	IVA           decimal.Decimal
	CostoEnvio    decimal.Decimal
	PrecioFinal   decimal.Decimal
	TipoCambio    decimal.Decimal // 0 = pedir al proveedor (solo pesa con costo USD)
	GrupoComision int             // 0 = usar el grupo por defecto de las constantes
	Cuotas        int
	Guardar       bool   // persistir el cálculo en el historial
	UserID        string // para el registro persistido
}

// CalculateOutput salidas del caso de uso.
type CalculateOutput struct {
	// Incompleto indica "formulario sin completar": sin resultado y sin error.
	Incompleto bool
	Resultado  *domainpricing.MarkupResult
	// Cuotario desglose del solver; vacío si no aplica o si se degradó.
	Cuotario []entity.InstallmentPrice
	// SolverDegradado true cuando el solver falló y se muestra solo contado.
	SolverDegradado bool

	TipoCambioUsado     decimal.Decimal
	EsquemaVersionID    string
	ConstantesVersionID string
	RegistroID          string // ID del registro persistido, si Guardar
}

// Calculate ejecuta un cálculo de markup contra los snapshots activos.
// Idempotente y sin estado: un recálculo por cambio de input simplemente
// supersede al anterior (la cancelación viaja por ctx).
func (uc *CalculateUseCase) Calculate(ctx context.Context, in CalculateInput) (*CalculateOutput, error) {
	esquema, err := uc.esquemas.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	constantes, err := uc.constantes.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	grupo := in.GrupoComision
	if grupo == 0 {
		grupo = constantes.GrupoComisionDefault
	}

	tc := in.TipoCambio
	if tc.IsZero() && in.MonedaCosto == entity.MonedaUSD && uc.rates != nil {
		cot, err := uc.rates.Cotizacion(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("proveedor de cotización no disponible")
		} else {
			tc = cot.Venta
		}
	}

	res, err := domainpricing.Calculate(domainpricing.TransactionInput{
		Costo:         in.Costo,
		MonedaCosto:   in.MonedaCosto,
		IVA:           in.IVA,
		CostoEnvio:    in.CostoEnvio,
		PrecioFinal:   in.PrecioFinal,
		TipoCambio:    tc,
		GrupoComision: grupo,
	}, esquema, constantes, in.Cuotas)
	if err != nil {
		return nil, err
	}

	out := &CalculateOutput{
		TipoCambioUsado:     tc,
		EsquemaVersionID:    esquema.ID,
		ConstantesVersionID: constantes.ID,
	}
	if res == nil {
		out.Incompleto = true
		return out, nil
	}
	out.Resultado = res

	out.Cuotario, out.SolverDegradado = uc.resolverCuotas(ctx, in, constantes, res, grupo, tc)

	if in.Guardar && uc.calcRepo != nil {
		rec := uc.buildRecord(in, esquema, constantes, res, out.Cuotario, grupo, tc)
		if err := uc.calcRepo.Create(ctx, rec); err != nil {
			return nil, err
		}
		out.RegistroID = rec.ID
	}

	return out, nil
}

// resolverCuotas consulta el solver externo con timeout propio. Solo se
// invoca con un markup base válido; cualquier falla degrada a contado y
// jamás aborta el cálculo principal.
func (uc *CalculateUseCase) resolverCuotas(
	ctx context.Context,
	in CalculateInput,
	constantes *entity.PricingConstants,
	res *domainpricing.MarkupResult,
	grupo int,
	tc decimal.Decimal,
) (cuotario []entity.InstallmentPrice, degradado bool) {
	if uc.solver == nil {
		return nil, false
	}
	if !res.MarkupPct.IsPositive() || !in.Costo.IsPositive() || !in.PrecioFinal.IsPositive() {
		return nil, false
	}
	if in.MonedaCosto == entity.MonedaUSD && !tc.IsPositive() {
		return nil, false
	}

	solverCtx, cancel := context.WithTimeout(ctx, uc.solverTimeout)
	defer cancel()

	cuotario, err := uc.solver.Resolver(solverCtx, SolverRequest{
		Costo:           in.Costo,
		MonedaCosto:     in.MonedaCosto,
		IVA:             in.IVA,
		CostoEnvio:      in.CostoEnvio,
		MarkupObjetivo:  res.MarkupPct,
		TipoCambio:      tc,
		GrupoComision:   grupo,
		MarkupAdicional: constantes.MarkupAdicionalCuotas,
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("solver de cuotas degradado: se muestra solo contado")
		return nil, true
	}
	return cuotario, false
}

func (uc *CalculateUseCase) buildRecord(
	in CalculateInput,
	esquema *entity.CommissionSchedule,
	constantes *entity.PricingConstants,
	res *domainpricing.MarkupResult,
	cuotario []entity.InstallmentPrice,
	grupo int,
	tc decimal.Decimal,
) *entity.CalculationRecord {
	return &entity.CalculationRecord{
		ID:                  uuid.New().String(),
		UserID:              in.UserID,
		CreadoEn:            time.Now(),
		Costo:               in.Costo,
		MonedaCosto:         in.MonedaCosto,
		IVA:                 in.IVA,
		CostoEnvio:          in.CostoEnvio,
		PrecioFinal:         in.PrecioFinal,
		TipoCambio:          tc,
		GrupoComision:       grupo,
		Cuotas:              in.Cuotas,
		EsquemaVersionID:    esquema.ID,
		ConstantesVersionID: constantes.ID,
		CostoARS:            res.CostoARS,
		ComisionTotal:       res.ComisionTotal,
		Limpio:              res.Limpio,
		MarkupPct:           res.MarkupPct,
		Cuotario:            cuotario,
	}
}
