package entity

import "time"

// Role rol de un usuario. Conjunto cerrado: cualquier otro valor es inválido.
type Role string

// Roles válidos para User.
const (
	RoleClient   Role = "CLIENT"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole convierte un string al rol correspondiente.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleClient, RoleEmployee, RoleAdmin:
		return r, true
	}
	return "", false
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Principal identidad autenticada asociada a una llamada. Se pasa por parámetro, nunca
// como estado global; nil significa llamada anónima.
type Principal struct {
	ID   string
	Role Role
}

// User representa un usuario del restaurante (cliente, empleado o administrador).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
