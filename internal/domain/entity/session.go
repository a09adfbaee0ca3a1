package entity

import "time"

// Session es una sesión de servidor con token opaco: el token no codifica
// nada, solo vale mientras exista el registro y no haya expirado. Así el
// logout y la expiración son autoritativos de inmediato.
type Session struct {
	Token     string
	UserID    int64
	CompanyID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired indica si la sesión ya venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// SessionContext es el resultado de validar una sesión: el usuario actuante
// y su empresa, listo para derivar el alcance de tenant de cada operación.
type SessionContext struct {
	Token       string
	UserID      int64
	CompanyID   int64
	Username    string
	Name        string
	CompanyName string
	CompanySlug string
	IsAdmin     bool
	ExpiresAt   time.Time
}
