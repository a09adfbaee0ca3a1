package entity

import "time"

// Item es la hoja de la jerarquía del catálogo. Puede tener una imagen
// almacenada en el object store: ImageURL es la URL pública e ImageKey la
// clave del objeto, guardada aparte para poder borrarlo sin parsear URLs.
type Item struct {
	ID              int64
	CompanyID       int64
	SubcategoryID   int64
	Name            string
	ImageURL        *string
	ImageKey        *string
	SubcategoryName string // denormalizado en lecturas con JOIN
	CategoryName    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
