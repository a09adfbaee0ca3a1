package entity

import "time"

// Company representa una empresa/tenant del sistema. Es la raíz del
// aislamiento multi-tenant: todo recurso del catálogo pertenece a una Company.
type Company struct {
	ID        int64
	Name      string
	Slug      string // identificador de negocio, único e inmutable
	CreatedAt time.Time
	UpdatedAt time.Time
}
