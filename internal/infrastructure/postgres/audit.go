package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comisiones-api/internal/domain"
)

// deleteReactivate transición común de eliminación para ambas cadenas de
// versiones: registra el motivo en auditoria_versiones, borra la versión
// activa y reabre la predecesora, todo o nada. tabla es un literal interno
// (versiones_esquema | versiones_constantes), nunca entrada del usuario.
func deleteReactivate(ctx context.Context, pool *pgxpool.Pool, tabla, kind, eliminarID, reabrirID, motivo, userID string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO auditoria_versiones (id, kind, version_id, motivo, user_id, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), kind, eliminarID, motivo, userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert auditoría: %w", err)
	}

	cmd, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND vigente_hasta IS NULL`, tabla),
		eliminarID,
	)
	if err != nil {
		return fmt.Errorf("delete versión activa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// La versión ya no es la activa: otro escritor ganó la carrera.
		return domain.ErrConflictoVersion
	}

	cmd, err = tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET vigente_hasta = NULL WHERE id = $1`, tabla),
		reabrirID,
	)
	if err != nil {
		return fmt.Errorf("reabrir predecesora: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSinPredecesora
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
