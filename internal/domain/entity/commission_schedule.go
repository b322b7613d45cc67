package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain"
)

// Cuotas admitidas por el canal de venta. 0 = pago de contado (lista 4).
var CuotasValidas = []int{3, 6, 9, 12}

// CommissionSchedule versión del esquema de comisiones: comisión base por
// grupo (lista 4) más el adicional por cantidad de cuotas, igual para todos
// los grupos. Inmutable una vez superada; solo la versión activa se edita.
type CommissionSchedule struct {
	VersionMeta
	// ComisionBase porcentaje de comisión sin cuotas por grupo (1..N).
	ComisionBase map[int]decimal.Decimal
	// AdicionalCuotas porcentaje que se suma a la base de todos los grupos
	// según cantidad de cuotas (3, 6, 9, 12).
	AdicionalCuotas map[int]decimal.Decimal
}

// Meta devuelve los metadatos de vigencia (puerto para el versionado).
func (s *CommissionSchedule) Meta() *VersionMeta {
	return &s.VersionMeta
}

// TasaParaGrupo resuelve el porcentaje de comisión de un grupo para la
// cantidad de cuotas dada (0 = solo base). Devuelve cero si el grupo no
// existe en el esquema: el motor lo trata como entrada incompleta.
func (s *CommissionSchedule) TasaParaGrupo(grupo, cuotas int) decimal.Decimal {
	base, ok := s.ComisionBase[grupo]
	if !ok {
		return decimal.Zero
	}
	if cuotas == 0 {
		return base
	}
	return base.Add(s.AdicionalCuotas[cuotas])
}

// Validar chequea la consistencia interna del borrador antes de persistirlo.
func (s *CommissionSchedule) Validar() error {
	if len(s.ComisionBase) == 0 {
		return fmt.Errorf("%w: el esquema no tiene grupos", domain.ErrValidacion)
	}
	for g, tasa := range s.ComisionBase {
		if g <= 0 {
			return fmt.Errorf("%w: grupo %d inválido", domain.ErrValidacion, g)
		}
		if tasa.IsNegative() {
			return fmt.Errorf("%w: comisión negativa para el grupo %d", domain.ErrValidacion, g)
		}
	}
	for c, adicional := range s.AdicionalCuotas {
		if !EsCuotasValidas(c) || c == 0 {
			return fmt.Errorf("%w: cantidad de cuotas %d inválida", domain.ErrValidacion, c)
		}
		if adicional.IsNegative() {
			return fmt.Errorf("%w: adicional negativo para %d cuotas", domain.ErrValidacion, c)
		}
	}
	return nil
}

// Grupos devuelve los identificadores de grupo presentes en el esquema, sin orden.
func (s *CommissionSchedule) Grupos() []int {
	out := make([]int, 0, len(s.ComisionBase))
	for g := range s.ComisionBase {
		out = append(out, g)
	}
	return out
}

// EsCuotasValidas indica si la cantidad de cuotas es una de las admitidas (o 0).
func EsCuotasValidas(cuotas int) bool {
	if cuotas == 0 {
		return true
	}
	for _, c := range CuotasValidas {
		if c == cuotas {
			return true
		}
	}
	return false
}
