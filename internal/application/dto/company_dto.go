package dto

import "time"

// CreateCompanyRequest alta de empresa (solo admin).
type CreateCompanyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CompanyResponse representación pública de una empresa.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse listado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}
