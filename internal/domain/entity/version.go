package entity

import "time"

// ConfigKind identifica un flujo de configuración versionada.
// Cada kind tiene su propia cadena de versiones con como máximo una activa.
type ConfigKind string

const (
	KindComisiones ConfigKind = "comisiones" // esquema de comisiones por grupo
	KindConstantes ConfigKind = "constantes" // constantes de precios (tiers, varios, etc.)
)

// VersionMeta campos comunes de toda versión con vigencia por fechas.
// VigenteHasta == nil significa "versión activa" (vigente hasta ser superada).
type VersionMeta struct {
	ID           string
	Nombre       string
	Descripcion  string
	VigenteDesde time.Time
	VigenteHasta *time.Time // nil = activa; las históricas tienen rango cerrado
	CreadoPor    string
	CreadoEn     time.Time
}

// Activa indica si la versión es la vigente (rango abierto).
func (m *VersionMeta) Activa() bool {
	return m.VigenteHasta == nil
}

// Cerrar fija el fin de vigencia (al crear una versión que la supera).
func (m *VersionMeta) Cerrar(hasta time.Time) {
	h := hasta
	m.VigenteHasta = &h
}

// Reabrir limpia el fin de vigencia (al eliminar la versión que la superaba).
func (m *VersionMeta) Reabrir() {
	m.VigenteHasta = nil
}
