package repository

import (
	"context"

	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	// Delete elimina la empresa y, por cascada en el store, todos sus
	// usuarios, sesiones, categorías, subcategorías e ítems.
	Delete(ctx context.Context, id int64) error
}
