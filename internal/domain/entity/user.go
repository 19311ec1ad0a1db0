package entity

import "time"

// Role rol de un usuario. Enumeración cerrada: cualquier otro valor no autoriza nada.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLEADO"
)

// ParseRole valida un rol recibido como texto.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee:
		return Role(s), true
	default:
		return "", false
	}
}

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca se serializa
	Role         Role
	Active       bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}
