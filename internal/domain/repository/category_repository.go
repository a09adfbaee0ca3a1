package repository

import (
	"context"

	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Toda operación lleva el companyID de la sesión actuante: el aislamiento de
// tenant se aplica en el predicado de cada sentencia, no en la UI.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, companyID int64, name string) (*entity.Category, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Category, error)
	// Update y Delete devuelven domain.ErrNotFound si la fila no existe
	// dentro de la empresa (incluida una fila de otra empresa).
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, companyID, id int64) error
}
