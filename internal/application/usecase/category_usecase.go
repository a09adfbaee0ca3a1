package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	"github.com/tu-usuario/catalogo-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías, siempre bajo la empresa de la sesión.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	itemRepo repository.ItemRepository
	images   ImageStore
}

// NewCategoryUseCase construye el caso de uso de categorías. itemRepo e
// images se usan solo para limpiar imágenes que la cascada dejaría huérfanas.
func NewCategoryUseCase(repo repository.CategoryRepository, itemRepo repository.ItemRepository, images ImageStore) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, itemRepo: itemRepo, images: images}
}

// List lista las categorías de la empresa, ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, companyID int64) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Create crea una categoría. El nombre es único por empresa: el mismo nombre
// bajo otra empresa es válido. El chequeo previo es solo atajo de UX; la
// garantía real es el constraint único (domain.ErrDuplicate).
func (uc *CategoryUseCase) Create(ctx context.Context, companyID int64, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, companyID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := &entity.Category{CompanyID: companyID, Name: in.Name}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return entityToCategoryResponse(category), nil
}

// Update renombra una categoría. Una fila de otra empresa se reporta como
// domain.ErrNotFound, nunca como Forbidden: no se filtra su existencia.
func (uc *CategoryUseCase) Update(ctx context.Context, companyID, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{ID: id, CompanyID: companyID, Name: in.Name}
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	updated, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCategoryResponse(updated), nil
}

// Delete elimina la categoría; subcategorías e ítems caen por cascada del
// store. Antes intenta borrar del object store las imágenes de los ítems que
// quedarán huérfanas; si falla solo se registra.
func (uc *CategoryUseCase) Delete(ctx context.Context, companyID, id int64) error {
	keys, err := uc.itemRepo.ListImageKeysByCategory(ctx, companyID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	removeImages(ctx, uc.images, keys)
	return nil
}

// removeImages borra claves del object store en best-effort compartido por
// los tres niveles de la jerarquía.
func removeImages(ctx context.Context, images ImageStore, keys []string) {
	for _, key := range keys {
		if err := images.Remove(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("no se pudo borrar imagen del object store")
		}
	}
}

func entityToCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
