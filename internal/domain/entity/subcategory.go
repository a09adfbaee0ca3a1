package entity

import "time"

// Subcategory es el segundo nivel de la jerarquía. El nombre es único dentro
// de su categoría (y empresa). Se elimina en cascada con la categoría.
type Subcategory struct {
	ID           int64
	CompanyID    int64
	CategoryID   int64
	Name         string
	CategoryName string // denormalizado en lecturas con JOIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
