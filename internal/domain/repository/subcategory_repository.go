package repository

import (
	"context"

	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
)

// SubcategoryRepository define el puerto de persistencia para Subcategory.
type SubcategoryRepository interface {
	Create(ctx context.Context, subcategory *entity.Subcategory) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Subcategory, error)
	ListByCategory(ctx context.Context, companyID, categoryID int64) ([]*entity.Subcategory, error)
	Update(ctx context.Context, subcategory *entity.Subcategory) error
	Delete(ctx context.Context, companyID, id int64) error
}
