package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

var _ versioning.Repository[*entity.PricingConstants] = (*ConstantsVersionRepo)(nil)

// ConstantsVersionRepo persistencia de la cadena de versiones de constantes
// de precios. Columnas NUMERIC escaneadas directo a decimal vía el codec del pool.
type ConstantsVersionRepo struct {
	pool *pgxpool.Pool
}

// NewConstantsVersionRepository construye el adaptador de persistencia.
func NewConstantsVersionRepository(pool *pgxpool.Pool) *ConstantsVersionRepo {
	return &ConstantsVersionRepo{pool: pool}
}

const constantsCols = `id, nombre, descripcion, vigente_desde, vigente_hasta, creado_por, creado_en,
	monto_tier1, monto_tier2, monto_tier3, comision_tier1, comision_tier2, comision_tier3,
	varios_porcentaje, grupo_comision_default, markup_adicional_cuotas,
	comision_tienda_nube, comision_tienda_nube_tarjeta`

// GetActive devuelve la versión con rango abierto o domain.ErrNotFound.
func (r *ConstantsVersionRepo) GetActive(ctx context.Context) (*entity.PricingConstants, error) {
	query := `SELECT ` + constantsCols + ` FROM versiones_constantes WHERE vigente_hasta IS NULL`
	return scanConstants(r.pool.QueryRow(ctx, query))
}

// GetByID devuelve una versión puntual (activa o histórica).
func (r *ConstantsVersionRepo) GetByID(ctx context.Context, id string) (*entity.PricingConstants, error) {
	query := `SELECT ` + constantsCols + ` FROM versiones_constantes WHERE id = $1`
	return scanConstants(r.pool.QueryRow(ctx, query, id))
}

// CreateSupersede cierra la versión activa e inserta la nueva en la misma transacción.
func (r *ConstantsVersionRepo) CreateSupersede(ctx context.Context, nueva *entity.PricingConstants, cerrarID string, hasta time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if cerrarID != "" {
		cmd, err := tx.Exec(ctx,
			`UPDATE versiones_constantes SET vigente_hasta = $2 WHERE id = $1 AND vigente_hasta IS NULL`,
			cerrarID, hasta,
		)
		if err != nil {
			return fmt.Errorf("cerrar versión: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrConflictoVersion
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO versiones_constantes (`+constantsCols+`)
		VALUES ($1, $2, $3, $4, NULL, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		nueva.ID, nueva.Nombre, nueva.Descripcion, nueva.VigenteDesde,
		nueva.CreadoPor, nueva.CreadoEn,
		nueva.MontoTier1, nueva.MontoTier2, nueva.MontoTier3,
		nueva.ComisionTier1, nueva.ComisionTier2, nueva.ComisionTier3,
		nueva.VariosPorcentaje, nueva.GrupoComisionDefault, nueva.MarkupAdicionalCuotas,
		nueva.ComisionTiendaNube, nueva.ComisionTiendaNubeTarjeta,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflictoVersion
		}
		return fmt.Errorf("insert versión constantes: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update reescribe los campos editables de la versión activa.
func (r *ConstantsVersionRepo) Update(ctx context.Context, c *entity.PricingConstants) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE versiones_constantes
		SET nombre = $2, descripcion = $3,
		    monto_tier1 = $4, monto_tier2 = $5, monto_tier3 = $6,
		    comision_tier1 = $7, comision_tier2 = $8, comision_tier3 = $9,
		    varios_porcentaje = $10, grupo_comision_default = $11, markup_adicional_cuotas = $12,
		    comision_tienda_nube = $13, comision_tienda_nube_tarjeta = $14
		WHERE id = $1`,
		c.ID, c.Nombre, c.Descripcion,
		c.MontoTier1, c.MontoTier2, c.MontoTier3,
		c.ComisionTier1, c.ComisionTier2, c.ComisionTier3,
		c.VariosPorcentaje, c.GrupoComisionDefault, c.MarkupAdicionalCuotas,
		c.ComisionTiendaNube, c.ComisionTiendaNubeTarjeta,
	)
	if err != nil {
		return fmt.Errorf("update versión constantes: %w", err)
	}
	return nil
}

// DeleteReactivate elimina la versión activa, reabre la predecesora y audita el motivo.
func (r *ConstantsVersionRepo) DeleteReactivate(ctx context.Context, eliminarID, reabrirID, motivo, userID string) error {
	return deleteReactivate(ctx, r.pool, "versiones_constantes", string(entity.KindConstantes), eliminarID, reabrirID, motivo, userID)
}

// ListHistory devuelve la cadena completa, más reciente primero.
func (r *ConstantsVersionRepo) ListHistory(ctx context.Context) ([]*entity.PricingConstants, error) {
	query := `SELECT ` + constantsCols + ` FROM versiones_constantes ORDER BY vigente_desde DESC, creado_en DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list versiones constantes: %w", err)
	}
	defer rows.Close()

	var out []*entity.PricingConstants
	for rows.Next() {
		c, err := scanConstants(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanConstants(row pgx.Row) (*entity.PricingConstants, error) {
	var c entity.PricingConstants
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Descripcion, &c.VigenteDesde, &c.VigenteHasta,
		&c.CreadoPor, &c.CreadoEn,
		&c.MontoTier1, &c.MontoTier2, &c.MontoTier3,
		&c.ComisionTier1, &c.ComisionTier2, &c.ComisionTier3,
		&c.VariosPorcentaje, &c.GrupoComisionDefault, &c.MarkupAdicionalCuotas,
		&c.ComisionTiendaNube, &c.ComisionTiendaNubeTarjeta,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan versión constantes: %w", err)
	}
	return &c, nil
}
