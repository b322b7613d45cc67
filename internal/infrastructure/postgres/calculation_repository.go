package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
)

var _ repository.CalculationRepository = (*CalculationRepo)(nil)

// CalculationRepo persistencia del historial de cálculos. El cuotario se
// guarda como JSONB pero con la estructura explícita de InstallmentPrice.
type CalculationRepo struct {
	q Querier
}

// NewCalculationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCalculationRepository(q Querier) *CalculationRepo {
	return &CalculationRepo{q: q}
}

const calculationCols = `id, user_id, creado_en, costo, moneda_costo, iva, costo_envio, precio_final,
	tipo_cambio, grupo_comision, cuotas, esquema_version_id, constantes_version_id,
	costo_ars, comision_total, limpio, markup_pct, cuotario`

// Create persiste un cálculo finalizado.
func (r *CalculationRepo) Create(ctx context.Context, rec *entity.CalculationRecord) error {
	cuotario, err := json.Marshal(rec.Cuotario)
	if err != nil {
		return fmt.Errorf("marshal cuotario: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO calculos (`+calculationCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		rec.ID, rec.UserID, rec.CreadoEn, rec.Costo, rec.MonedaCosto, rec.IVA,
		rec.CostoEnvio, rec.PrecioFinal, rec.TipoCambio, rec.GrupoComision, rec.Cuotas,
		rec.EsquemaVersionID, rec.ConstantesVersionID,
		rec.CostoARS, rec.ComisionTotal, rec.Limpio, rec.MarkupPct, cuotario,
	)
	if err != nil {
		return fmt.Errorf("insert cálculo: %w", err)
	}
	return nil
}

// GetByID obtiene un cálculo por ID.
func (r *CalculationRepo) GetByID(ctx context.Context, id string) (*entity.CalculationRecord, error) {
	query := `SELECT ` + calculationCols + ` FROM calculos WHERE id = $1`
	return scanCalculation(r.q.QueryRow(ctx, query, id))
}

// List devuelve los cálculos más recientes primero.
func (r *CalculationRepo) List(ctx context.Context, limit, offset int) ([]*entity.CalculationRecord, error) {
	query := `SELECT ` + calculationCols + ` FROM calculos ORDER BY creado_en DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cálculos: %w", err)
	}
	defer rows.Close()

	var out []*entity.CalculationRecord
	for rows.Next() {
		rec, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanCalculation(row pgx.Row) (*entity.CalculationRecord, error) {
	var rec entity.CalculationRecord
	var cuotario []byte
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.CreadoEn, &rec.Costo, &rec.MonedaCosto, &rec.IVA,
		&rec.CostoEnvio, &rec.PrecioFinal, &rec.TipoCambio, &rec.GrupoComision, &rec.Cuotas,
		&rec.EsquemaVersionID, &rec.ConstantesVersionID,
		&rec.CostoARS, &rec.ComisionTotal, &rec.Limpio, &rec.MarkupPct, &cuotario,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan cálculo: %w", err)
	}
	if len(cuotario) > 0 {
		if err := json.Unmarshal(cuotario, &rec.Cuotario); err != nil {
			return nil, fmt.Errorf("unmarshal cuotario: %w", err)
		}
	}
	return &rec, nil
}
