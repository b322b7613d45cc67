package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrValidacion         = errors.New("versión inválida")
	ErrSinVersionActiva   = errors.New("no hay versión activa para la configuración")
	ErrConflictoVersion   = errors.New("conflicto de versiones concurrentes")
	ErrVersionNoActiva    = errors.New("la operación solo aplica a la versión activa")
	ErrMotivoRequerido    = errors.New("la eliminación requiere un motivo de al menos 10 caracteres")
	ErrSinPredecesora     = errors.New("no existe versión anterior para reactivar")
	ErrSolverNoDisponible = errors.New("solver de cuotas no disponible")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
