package entity

import "time"

// Role rol de un usuario. Solo existen dos valores válidos.
type Role string

// Roles válidos para User.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid indica si el rol pertenece al enum.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User representa un usuario de la plataforma visto desde el panel.
// Rol y activación son los únicos campos de clasificación que el panel modifica.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	Activo    bool
	Picture   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key identidad usada por el estado local.
func (u User) Key() string { return u.ID }

// Clone devuelve una copia (User no tiene campos por referencia).
func (u User) Clone() User { return u }
