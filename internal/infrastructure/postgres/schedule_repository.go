package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

var _ versioning.Repository[*entity.CommissionSchedule] = (*ScheduleVersionRepo)(nil)

// ScheduleVersionRepo persistencia de la cadena de versiones del esquema de
// comisiones. Las transiciones supersede/reactivate corren en una transacción;
// el índice parcial único sobre (vigente_hasta IS NULL) garantiza a nivel base
// que nunca haya dos activas aunque corran dos procesos.
type ScheduleVersionRepo struct {
	pool *pgxpool.Pool
}

// NewScheduleVersionRepository construye el adaptador de persistencia.
func NewScheduleVersionRepository(pool *pgxpool.Pool) *ScheduleVersionRepo {
	return &ScheduleVersionRepo{pool: pool}
}

const scheduleCols = `id, nombre, descripcion, vigente_desde, vigente_hasta, creado_por, creado_en, comision_base, adicional_cuotas`

// GetActive devuelve la versión con rango abierto o domain.ErrNotFound.
func (r *ScheduleVersionRepo) GetActive(ctx context.Context) (*entity.CommissionSchedule, error) {
	query := `SELECT ` + scheduleCols + ` FROM versiones_esquema WHERE vigente_hasta IS NULL`
	return scanSchedule(r.pool.QueryRow(ctx, query))
}

// GetByID devuelve una versión puntual (activa o histórica).
func (r *ScheduleVersionRepo) GetByID(ctx context.Context, id string) (*entity.CommissionSchedule, error) {
	query := `SELECT ` + scheduleCols + ` FROM versiones_esquema WHERE id = $1`
	return scanSchedule(r.pool.QueryRow(ctx, query, id))
}

// CreateSupersede cierra la versión activa e inserta la nueva en la misma transacción.
func (r *ScheduleVersionRepo) CreateSupersede(ctx context.Context, nueva *entity.CommissionSchedule, cerrarID string, hasta time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if cerrarID != "" {
		cmd, err := tx.Exec(ctx,
			`UPDATE versiones_esquema SET vigente_hasta = $2 WHERE id = $1 AND vigente_hasta IS NULL`,
			cerrarID, hasta,
		)
		if err != nil {
			return fmt.Errorf("cerrar versión: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			// Otro escritor cerró la activa entre la lectura y esta tx.
			return domain.ErrConflictoVersion
		}
	}

	base, cuotas, err := marshalScheduleMaps(nueva)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO versiones_esquema (`+scheduleCols+`)
		VALUES ($1, $2, $3, $4, NULL, $5, $6, $7, $8)`,
		nueva.ID, nueva.Nombre, nueva.Descripcion, nueva.VigenteDesde,
		nueva.CreadoPor, nueva.CreadoEn, base, cuotas,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflictoVersion
		}
		return fmt.Errorf("insert versión esquema: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update reescribe los campos editables de la versión (solo la activa llega acá).
func (r *ScheduleVersionRepo) Update(ctx context.Context, s *entity.CommissionSchedule) error {
	base, cuotas, err := marshalScheduleMaps(s)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE versiones_esquema
		SET nombre = $2, descripcion = $3, comision_base = $4, adicional_cuotas = $5
		WHERE id = $1`,
		s.ID, s.Nombre, s.Descripcion, base, cuotas,
	)
	if err != nil {
		return fmt.Errorf("update versión esquema: %w", err)
	}
	return nil
}

// DeleteReactivate elimina la versión activa, reabre la predecesora y deja
// el motivo en la auditoría, todo en la misma transacción.
func (r *ScheduleVersionRepo) DeleteReactivate(ctx context.Context, eliminarID, reabrirID, motivo, userID string) error {
	return deleteReactivate(ctx, r.pool, "versiones_esquema", string(entity.KindComisiones), eliminarID, reabrirID, motivo, userID)
}

// ListHistory devuelve la cadena completa, más reciente primero.
func (r *ScheduleVersionRepo) ListHistory(ctx context.Context) ([]*entity.CommissionSchedule, error) {
	query := `SELECT ` + scheduleCols + ` FROM versiones_esquema ORDER BY vigente_desde DESC, creado_en DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list versiones esquema: %w", err)
	}
	defer rows.Close()

	var out []*entity.CommissionSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func marshalScheduleMaps(s *entity.CommissionSchedule) (base, cuotas []byte, err error) {
	if base, err = json.Marshal(s.ComisionBase); err != nil {
		return nil, nil, fmt.Errorf("marshal comision_base: %w", err)
	}
	if cuotas, err = json.Marshal(s.AdicionalCuotas); err != nil {
		return nil, nil, fmt.Errorf("marshal adicional_cuotas: %w", err)
	}
	return base, cuotas, nil
}

func scanSchedule(row pgx.Row) (*entity.CommissionSchedule, error) {
	var s entity.CommissionSchedule
	var base, cuotas []byte
	err := row.Scan(
		&s.ID, &s.Nombre, &s.Descripcion, &s.VigenteDesde, &s.VigenteHasta,
		&s.CreadoPor, &s.CreadoEn, &base, &cuotas,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan versión esquema: %w", err)
	}
	s.ComisionBase = map[int]decimal.Decimal{}
	s.AdicionalCuotas = map[int]decimal.Decimal{}
	if err := json.Unmarshal(base, &s.ComisionBase); err != nil {
		return nil, fmt.Errorf("unmarshal comision_base: %w", err)
	}
	if err := json.Unmarshal(cuotas, &s.AdicionalCuotas); err != nil {
		return nil, fmt.Errorf("unmarshal adicional_cuotas: %w", err)
	}
	return &s, nil
}
