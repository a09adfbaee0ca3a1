package entity

import "time"

// Category es el primer nivel de la jerarquía del catálogo.
// El nombre es único por empresa.
type Category struct {
	ID        int64
	CompanyID int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
