package repository

import (
	"context"

	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Item, error)
	ListBySubcategory(ctx context.Context, companyID, subcategoryID int64) ([]*entity.Item, error)
	// ListImageKeysBySubcategory y ListImageKeysByCategory devuelven las
	// claves de imagen que quedarían huérfanas al borrar el padre, para que
	// el caso de uso intente limpiarlas en el object store.
	ListImageKeysBySubcategory(ctx context.Context, companyID, subcategoryID int64) ([]string, error)
	ListImageKeysByCategory(ctx context.Context, companyID, categoryID int64) ([]string, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, companyID, id int64) error
}
