// Package versioning administra cadenas de versiones con vigencia por fechas.
// Cada kind (esquema de comisiones, constantes de precios) tiene exactamente
// una versión activa en todo momento; las históricas quedan con rango cerrado
// contiguo y son inmutables.
package versioning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// Versioned payload versionable: expone sus metadatos de vigencia y valida
// su propia consistencia.
type Versioned interface {
	Meta() *entity.VersionMeta
	Validar() error
}

// Repository puerto de persistencia para la cadena de versiones de un kind.
// Las transiciones CreateSupersede y DeleteReactivate deben ser atómicas:
// un lector de GetActive nunca observa cero ni dos versiones activas.
type Repository[T Versioned] interface {
	// GetActive devuelve la versión con rango abierto, o domain.ErrNotFound.
	GetActive(ctx context.Context) (T, error)
	GetByID(ctx context.Context, id string) (T, error)
	// CreateSupersede inserta nueva como activa y cierra cerrarID con
	// VigenteHasta = hasta, en la misma transacción. cerrarID vacío cuando
	// nueva es la primera versión de la cadena.
	CreateSupersede(ctx context.Context, nueva T, cerrarID string, hasta time.Time) error
	// Update reescribe los campos de la versión (solo se invoca sobre la activa).
	Update(ctx context.Context, v T) error
	// DeleteReactivate elimina eliminarID, reabre reabrirID y registra el
	// motivo de auditoría, todo en la misma transacción.
	DeleteReactivate(ctx context.Context, eliminarID, reabrirID, motivo, userID string) error
	// ListHistory devuelve la cadena completa, más reciente primero.
	ListHistory(ctx context.Context) ([]T, error)
}

// MotivoMinimo largo mínimo del motivo exigido al eliminar la versión activa.
const MotivoMinimo = 10

// Manager serializa las mutaciones de una cadena de versiones (un escritor
// por kind). Las lecturas van siempre al repositorio, nunca a un puntero
// cacheado. Los conflictos entre procesos los detecta el repositorio y se
// propagan como domain.ErrConflictoVersion.
type Manager[T Versioned] struct {
	kind entity.ConfigKind
	repo Repository[T]
	mu   sync.Mutex
}

// NewManager construye el manager para un kind.
func NewManager[T Versioned](kind entity.ConfigKind, repo Repository[T]) *Manager[T] {
	return &Manager[T]{kind: kind, repo: repo}
}

// Kind devuelve la configuración que administra este manager.
func (m *Manager[T]) Kind() entity.ConfigKind {
	return m.kind
}

// GetActive devuelve la versión vigente. Falla con domain.ErrSinVersionActiva
// si la cadena está vacía, situación que no debe darse en régimen (siempre
// existe al menos la versión semilla).
func (m *Manager[T]) GetActive(ctx context.Context) (T, error) {
	v, err := m.repo.GetActive(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, domain.ErrNotFound) {
			return zero, fmt.Errorf("%w: %s", domain.ErrSinVersionActiva, m.kind)
		}
		return zero, err
	}
	return v, nil
}

// GetByID devuelve una versión puntual (activa o histórica, solo lectura).
func (m *Manager[T]) GetByID(ctx context.Context, id string) (T, error) {
	return m.repo.GetByID(ctx, id)
}

// Create valida el borrador y lo inserta como nueva versión activa, cerrando
// la anterior con VigenteHasta = VigenteDesde del borrador ("vigente hasta
// ser superada"). La transición es todo-o-nada.
func (m *Manager[T]) Create(ctx context.Context, borrador T) (T, error) {
	var zero T

	meta := borrador.Meta()
	if strings.TrimSpace(meta.Nombre) == "" {
		return zero, fmt.Errorf("%w: la versión requiere nombre", domain.ErrValidacion)
	}
	if meta.VigenteDesde.IsZero() {
		return zero, fmt.Errorf("%w: la versión requiere fecha de vigencia", domain.ErrValidacion)
	}
	if err := borrador.Validar(); err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cerrarID := ""
	activa, err := m.repo.GetActive(ctx)
	switch {
	case err == nil:
		am := activa.Meta()
		if meta.VigenteDesde.Before(am.VigenteDesde) {
			return zero, fmt.Errorf("%w: la vigencia no puede ser anterior a la versión activa", domain.ErrValidacion)
		}
		cerrarID = am.ID
	case errors.Is(err, domain.ErrNotFound):
		// primera versión de la cadena
	default:
		return zero, err
	}

	if meta.ID == "" {
		meta.ID = uuid.New().String()
	}
	meta.VigenteHasta = nil
	if meta.CreadoEn.IsZero() {
		meta.CreadoEn = time.Now()
	}

	if err := m.repo.CreateSupersede(ctx, borrador, cerrarID, meta.VigenteDesde); err != nil {
		return zero, err
	}
	return borrador, nil
}

// Update aplica un patch in-place sobre la versión activa. No altera la
// cadena de fechas: ID, VigenteDesde, VigenteHasta y CreadoEn se preservan
// aunque el patch intente tocarlos.
func (m *Manager[T]) Update(ctx context.Context, versionID string, patch func(T)) (T, error) {
	var zero T

	m.mu.Lock()
	defer m.mu.Unlock()

	activa, err := m.GetActive(ctx)
	if err != nil {
		return zero, err
	}
	meta := activa.Meta()
	if meta.ID != versionID {
		return zero, domain.ErrVersionNoActiva
	}

	antes := *meta
	patch(activa)
	meta.ID = antes.ID
	meta.VigenteDesde = antes.VigenteDesde
	meta.VigenteHasta = antes.VigenteHasta
	meta.CreadoEn = antes.CreadoEn

	if strings.TrimSpace(meta.Nombre) == "" {
		return zero, fmt.Errorf("%w: la versión requiere nombre", domain.ErrValidacion)
	}
	if err := activa.Validar(); err != nil {
		return zero, err
	}
	if err := m.repo.Update(ctx, activa); err != nil {
		return zero, err
	}
	return activa, nil
}

// Delete elimina la versión activa y reactiva la inmediatamente anterior
// (reabre su VigenteHasta). Exige un motivo de auditoría de al menos
// MotivoMinimo caracteres; las versiones históricas no se eliminan por
// ningún otro camino.
func (m *Manager[T]) Delete(ctx context.Context, versionID, motivo, userID string) error {
	if len(strings.TrimSpace(motivo)) < MotivoMinimo {
		return domain.ErrMotivoRequerido
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	activa, err := m.GetActive(ctx)
	if err != nil {
		return err
	}
	if activa.Meta().ID != versionID {
		return domain.ErrVersionNoActiva
	}

	historial, err := m.repo.ListHistory(ctx)
	if err != nil {
		return err
	}
	reabrirID := ""
	for _, v := range historial {
		if v.Meta().ID != versionID {
			reabrirID = v.Meta().ID
			break
		}
	}
	if reabrirID == "" {
		return domain.ErrSinPredecesora
	}

	return m.repo.DeleteReactivate(ctx, versionID, reabrirID, strings.TrimSpace(motivo), userID)
}

// ListHistory devuelve la cadena completa, más reciente primero.
func (m *Manager[T]) ListHistory(ctx context.Context) ([]T, error) {
	return m.repo.ListHistory(ctx)
}
