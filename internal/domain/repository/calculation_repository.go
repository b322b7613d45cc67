package repository

import (
	"context"

	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// CalculationRepository puerto de persistencia del historial de cálculos.
// El motor no persiste nada por sí mismo; guardar es decisión del caller.
type CalculationRepository interface {
	Create(ctx context.Context, rec *entity.CalculationRecord) error
	GetByID(ctx context.Context, id string) (*entity.CalculationRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CalculationRecord, error)
}
