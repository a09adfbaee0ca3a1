package entity

import "time"

// User representa un usuario del sistema (pertenece a una Company).
// El username es único dentro de su empresa, no globalmente.
type User struct {
	ID           int64
	CompanyID    int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
