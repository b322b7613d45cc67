package versioning_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeRepo repositorio en memoria para ejercitar el ciclo de vida sin base de
// datos. Respeta el contrato: historial más reciente primero, transiciones
// atómicas bajo su propio lock.
// ──────────────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	mu        sync.Mutex
	items     []*entity.CommissionSchedule
	conflicto bool // fuerza ErrConflictoVersion en CreateSupersede
	motivos   []string
}

func (r *fakeRepo) GetActive(ctx context.Context) (*entity.CommissionSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.Activa() {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*entity.CommissionSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) CreateSupersede(ctx context.Context, nueva *entity.CommissionSchedule, cerrarID string, hasta time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicto {
		return domain.ErrConflictoVersion
	}
	if cerrarID != "" {
		for _, v := range r.items {
			if v.ID == cerrarID {
				v.Cerrar(hasta)
			}
		}
	}
	r.items = append([]*entity.CommissionSchedule{nueva}, r.items...)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, v *entity.CommissionSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == v.ID {
			r.items[i] = v
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRepo) DeleteReactivate(ctx context.Context, eliminarID, reabrirID, motivo, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resto := r.items[:0]
	for _, v := range r.items {
		if v.ID == eliminarID {
			continue
		}
		if v.ID == reabrirID {
			v.Reabrir()
		}
		resto = append(resto, v)
	}
	r.items = resto
	r.motivos = append(r.motivos, motivo)
	return nil
}

func (r *fakeRepo) ListHistory(ctx context.Context) ([]*entity.CommissionSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.CommissionSchedule, len(r.items))
	copy(out, r.items)
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func borrador(nombre string, desde time.Time) *entity.CommissionSchedule {
	return &entity.CommissionSchedule{
		VersionMeta: entity.VersionMeta{Nombre: nombre, VigenteDesde: desde},
		ComisionBase: map[int]decimal.Decimal{
			1: decimal.RequireFromString("13"),
		},
		AdicionalCuotas: map[int]decimal.Decimal{
			3: decimal.RequireFromString("5.5"),
		},
	}
}

func nuevoManager() (*versioning.Manager[*entity.CommissionSchedule], *fakeRepo) {
	repo := &fakeRepo{}
	return versioning.NewManager[*entity.CommissionSchedule](entity.KindComisiones, repo), repo
}

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// ── GetActive ─────────────────────────────────────────────────────────────────

func TestGetActive_SinVersiones(t *testing.T) {
	m, _ := nuevoManager()
	_, err := m.GetActive(context.Background())
	assert.ErrorIs(t, err, domain.ErrSinVersionActiva)
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_PrimeraVersionQuedaActiva(t *testing.T) {
	m, _ := nuevoManager()
	v, err := m.Create(context.Background(), borrador("inicial", t0))
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.True(t, v.Activa())

	activa, err := m.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, v.ID, activa.ID)
}

func TestCreate_CierraLaAnteriorEnLaFechaDeLaNueva(t *testing.T) {
	m, _ := nuevoManager()
	ctx := context.Background()

	v1, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)
	t1 := t0.AddDate(0, 1, 0)
	v2, err := m.Create(ctx, borrador("v2", t1))
	require.NoError(t, err)

	historial, err := m.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, historial, 2)
	assert.Equal(t, v2.ID, historial[0].ID, "más reciente primero")

	// Exactamente una activa; la anterior cerrada en la vigencia de la nueva.
	assert.True(t, historial[0].Activa())
	require.NotNil(t, historial[1].VigenteHasta)
	assert.True(t, historial[1].VigenteHasta.Equal(t1), "rango contiguo")
	assert.Equal(t, v1.ID, historial[1].ID)
}

func TestCreate_BorradorSinNombreRechazado(t *testing.T) {
	m, repo := nuevoManager()
	_, err := m.Create(context.Background(), borrador("", t0))
	assert.ErrorIs(t, err, domain.ErrValidacion)
	assert.Empty(t, repo.items, "ante rechazo el store queda intacto")
}

func TestCreate_BorradorSinFechaRechazado(t *testing.T) {
	m, _ := nuevoManager()
	_, err := m.Create(context.Background(), borrador("v1", time.Time{}))
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestCreate_BorradorSinGruposRechazado(t *testing.T) {
	m, _ := nuevoManager()
	b := borrador("v1", t0)
	b.ComisionBase = nil
	_, err := m.Create(context.Background(), b)
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestCreate_VigenciaAnteriorALaActivaRechazada(t *testing.T) {
	m, _ := nuevoManager()
	ctx := context.Background()
	_, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)

	_, err = m.Create(ctx, borrador("v2", t0.AddDate(0, 0, -1)))
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestCreate_ConflictoConcurrentePropagado(t *testing.T) {
	m, repo := nuevoManager()
	repo.conflicto = true
	_, err := m.Create(context.Background(), borrador("v1", t0))
	assert.ErrorIs(t, err, domain.ErrConflictoVersion)
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestUpdate_PatchSobreLaActivaSinTocarVigencia(t *testing.T) {
	m, _ := nuevoManager()
	ctx := context.Background()
	v1, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)

	nueva := decimal.RequireFromString("14.5")
	actualizada, err := m.Update(ctx, v1.ID, func(s *entity.CommissionSchedule) {
		s.ComisionBase[1] = nueva
		s.Descripcion = "ajuste de marzo"
		s.VigenteDesde = t0.AddDate(1, 0, 0) // el patch no puede mover la cadena
	})
	require.NoError(t, err)
	assert.True(t, actualizada.ComisionBase[1].Equal(nueva))
	assert.True(t, actualizada.VigenteDesde.Equal(t0), "VigenteDesde inalterada")

	activa, err := m.GetActive(ctx)
	require.NoError(t, err)
	assert.True(t, activa.ComisionBase[1].Equal(nueva), "GetActive refleja el patch")
	assert.Equal(t, "ajuste de marzo", activa.Descripcion)
}

func TestUpdate_SoloSobreLaVersionActiva(t *testing.T) {
	m, _ := nuevoManager()
	ctx := context.Background()
	v1, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)
	_, err = m.Create(ctx, borrador("v2", t0.AddDate(0, 1, 0)))
	require.NoError(t, err)

	_, err = m.Update(ctx, v1.ID, func(s *entity.CommissionSchedule) {})
	assert.ErrorIs(t, err, domain.ErrVersionNoActiva)
}

// ── Delete ────────────────────────────────────────────────────────────────────

// Escenario de referencia: historial [V1 cerrada, V2 activa]; eliminar V2
// reactiva V1 (VigenteHasta limpio) y saca a V2 de la cadena.
func TestDelete_ReactivaLaPredecesora(t *testing.T) {
	m, repo := nuevoManager()
	ctx := context.Background()
	v1, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)
	v2, err := m.Create(ctx, borrador("v2", t0.AddDate(0, 1, 0)))
	require.NoError(t, err)

	err = m.Delete(ctx, v2.ID, "testing deletion flow", "user-1")
	require.NoError(t, err)

	activa, err := m.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1.ID, activa.ID, "V1 vuelve a ser la activa")
	assert.Nil(t, activa.VigenteHasta, "VigenteHasta reabierto")

	historial, err := m.ListHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, historial, 1, "V2 eliminada de la cadena")
	assert.Equal(t, []string{"testing deletion flow"}, repo.motivos, "motivo auditado")
}

func TestDelete_MotivoCortoRechazado(t *testing.T) {
	m, repo := nuevoManager()
	ctx := context.Background()
	v1, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)

	err = m.Delete(ctx, v1.ID, "corto", "user-1")
	assert.ErrorIs(t, err, domain.ErrMotivoRequerido)
	assert.Len(t, repo.items, 1, "el store queda intacto")
}

func TestDelete_SinPredecesoraRechazado(t *testing.T) {
	m, _ := nuevoManager()
	ctx := context.Background()
	v1, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)

	err = m.Delete(ctx, v1.ID, "motivo suficientemente largo", "user-1")
	assert.ErrorIs(t, err, domain.ErrSinPredecesora)
}

func TestDelete_SoloSobreLaVersionActiva(t *testing.T) {
	m, _ := nuevoManager()
	ctx := context.Background()
	v1, err := m.Create(ctx, borrador("v1", t0))
	require.NoError(t, err)
	_, err = m.Create(ctx, borrador("v2", t0.AddDate(0, 1, 0)))
	require.NoError(t, err)

	err = m.Delete(ctx, v1.ID, "motivo suficientemente largo", "user-1")
	assert.ErrorIs(t, err, domain.ErrVersionNoActiva)
}

// ── Invariante de la cadena ───────────────────────────────────────────────────

// Tras cualquier secuencia de create/delete: exactamente una versión con
// rango abierto y fechas de cierre no decrecientes con la vigencia.
func TestCadena_InvarianteTrasSecuencia(t *testing.T) {
	m, _ := nuevoManager()
	ctx := context.Background()

	fechas := []time.Time{t0, t0.AddDate(0, 1, 0), t0.AddDate(0, 2, 0), t0.AddDate(0, 3, 0)}
	var ids []string
	for _, f := range fechas {
		v, err := m.Create(ctx, borrador("v", f))
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}
	require.NoError(t, m.Delete(ctx, ids[3], "se cargó con fecha equivocada", "user-1"))
	_, err := m.Create(ctx, borrador("v5", t0.AddDate(0, 4, 0)))
	require.NoError(t, err)

	historial, err := m.ListHistory(ctx)
	require.NoError(t, err)

	activas := 0
	for _, v := range historial {
		if v.Activa() {
			activas++
		}
	}
	assert.Equal(t, 1, activas, "exactamente una versión activa")

	// Historial más reciente primero: VigenteDesde y VigenteHasta decrecen.
	for i := 1; i < len(historial); i++ {
		mayor, menor := historial[i-1], historial[i]
		assert.False(t, mayor.VigenteDesde.Before(menor.VigenteDesde))
		require.NotNil(t, menor.VigenteHasta)
		assert.False(t, menor.VigenteHasta.Before(menor.VigenteDesde))
	}
}
