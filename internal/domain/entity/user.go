package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleAsistente = "asistente"
)

// User representa un usuario de la clínica.
// Los asistentes quedan restringidos a su Area; el admin ve todas.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Role         string // admin, asistente
	Area         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario no tiene restricción de área.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
