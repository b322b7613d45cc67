package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// GroupRates tasas observables de un grupo: lista 4 (contado) y la tasa total
// para cada cantidad de cuotas.
type GroupRates struct {
	Grupo  int
	Lista4 decimal.Decimal
	Cuotas map[int]decimal.Decimal // 3, 6, 9, 12 -> base + adicional
}

// ProjectMatrix proyecta la matriz de comisiones de una versión del esquema
// (activa o histórica). Vista derivada sin estado propio: se recalcula cada
// vez a partir del snapshot. Filas ordenadas por grupo.
func ProjectMatrix(s *entity.CommissionSchedule) []GroupRates {
	grupos := s.Grupos()
	sort.Ints(grupos)

	out := make([]GroupRates, 0, len(grupos))
	for _, g := range grupos {
		fila := GroupRates{
			Grupo:  g,
			Lista4: s.TasaParaGrupo(g, 0),
			Cuotas: make(map[int]decimal.Decimal, len(entity.CuotasValidas)),
		}
		for _, c := range entity.CuotasValidas {
			fila.Cuotas[c] = s.TasaParaGrupo(g, c)
		}
		out = append(out, fila)
	}
	return out
}
