package dto

import "time"

// CreateUserRequest alta de usuario por provisión de admin.
type CreateUserRequest struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CompanyID int64  `json:"company_id"`
	IsAdmin   bool   `json:"is_admin"`
}

// UserResponse representación pública de un usuario (sin hash).
type UserResponse struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
