package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEditor   = "editor"
	RoleVendedor = "vendedor"
)

// Códigos de permiso que consumen los middlewares y el resolver.
const (
	PermEditarComisiones = "editar_comisiones"
	PermEditarConstantes = "editar_constantes"
	PermCalcularPrecios  = "calcular_precios"
	PermVerHistorial     = "ver_historial"
)

// PermisosPorRol permisos base de cada rol. Las categorías de la UI son solo
// agrupación visual; acá importa únicamente el código.
var PermisosPorRol = map[string][]string{
	RoleAdmin:    {PermEditarComisiones, PermEditarConstantes, PermCalcularPrecios, PermVerHistorial},
	RoleEditor:   {PermEditarComisiones, PermEditarConstantes, PermCalcularPrecios, PermVerHistorial},
	RoleVendedor: {PermCalcularPrecios},
}

// User usuario del back office. Overrides pisa el permiso del rol por código:
// efectivo = override ?? (código ∈ permisos del rol).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Name         string
	Role         string          // admin, editor, vendedor
	Overrides    map[string]bool // código de permiso -> concedido/denegado
	Status       string          // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TienePermiso resuelve el permiso efectivo del usuario.
func (u *User) TienePermiso(codigo string) bool {
	if v, ok := u.Overrides[codigo]; ok {
		return v
	}
	for _, p := range PermisosPorRol[u.Role] {
		if p == codigo {
			return true
		}
	}
	return false
}
