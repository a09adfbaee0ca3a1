package dto

import "time"

// CreateCategoryRequest / UpdateCategoryRequest solo llevan el nombre:
// el tenant siempre se deriva de la sesión, nunca del cuerpo.
type CreateCategoryRequest struct {
	Name string `json:"name" form:"name"`
}

// UpdateCategoryRequest renombre de categoría.
type UpdateCategoryRequest struct {
	Name string `json:"name" form:"name"`
}

// CategoryResponse representación pública de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse listado de categorías de la empresa actuante.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}

// CreateSubcategoryRequest alta de subcategoría bajo una categoría.
type CreateSubcategoryRequest struct {
	Name       string `json:"name" form:"name"`
	CategoryID int64  `json:"category_id" form:"category_id"`
}

// UpdateSubcategoryRequest renombre de subcategoría.
type UpdateSubcategoryRequest struct {
	Name string `json:"name" form:"name"`
}

// SubcategoryResponse representación pública de una subcategoría.
type SubcategoryResponse struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Name         string    `json:"name"`
	CategoryName string    `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubcategoryListResponse listado de subcategorías de una categoría.
type SubcategoryListResponse struct {
	Items []SubcategoryResponse `json:"items"`
}

// CreateItemRequest alta de ítem; la imagen llega aparte como multipart.
type CreateItemRequest struct {
	Name          string `json:"name" form:"name"`
	SubcategoryID int64  `json:"subcategory_id" form:"subcategory_id"`
}

// UpdateItemRequest renombre de ítem; imagen nueva opcional por multipart.
type UpdateItemRequest struct {
	Name string `json:"name" form:"name"`
}

// ItemResponse representación pública de un ítem.
type ItemResponse struct {
	ID              int64     `json:"id"`
	SubcategoryID   int64     `json:"subcategory_id"`
	Name            string    `json:"name"`
	ImageURL        *string   `json:"image_url"`
	SubcategoryName string    `json:"subcategory_name,omitempty"`
	CategoryName    string    `json:"category_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ItemListResponse listado de ítems de una subcategoría.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}
