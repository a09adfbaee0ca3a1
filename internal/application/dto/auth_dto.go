package dto

import "time"

// LoginRequest credenciales de acceso. Company es el slug de la empresa:
// el mismo username puede existir bajo empresas distintas.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Company  string `json:"company"`
}

// LoginResponse sesión creada + datos básicos del usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SessionResponse datos del usuario actuante para GET /api/auth/check.
type SessionResponse struct {
	User UserResponse `json:"user"`
}
