package usecase

import (
	"context"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	"github.com/tu-usuario/catalogo-api/internal/domain/repository"
)

// SubcategoryUseCase CRUD de subcategorías bajo la empresa de la sesión.
type SubcategoryUseCase struct {
	repo         repository.SubcategoryRepository
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	images       ImageStore
}

// NewSubcategoryUseCase construye el caso de uso de subcategorías.
func NewSubcategoryUseCase(repo repository.SubcategoryRepository, categoryRepo repository.CategoryRepository, itemRepo repository.ItemRepository, images ImageStore) *SubcategoryUseCase {
	return &SubcategoryUseCase{repo: repo, categoryRepo: categoryRepo, itemRepo: itemRepo, images: images}
}

// ListByCategory lista las subcategorías de una categoría de la empresa.
// Una categoría de otra empresa se trata como inexistente.
func (uc *SubcategoryUseCase) ListByCategory(ctx context.Context, companyID, categoryID int64) (*dto.SubcategoryListResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrParentNotFound
	}
	list, err := uc.repo.ListByCategory(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *entityToSubcategoryResponse(s))
	}
	return &dto.SubcategoryListResponse{Items: items}, nil
}

// Create crea una subcategoría. El nombre es único dentro de su categoría;
// la categoría debe existir dentro de la empresa actuante.
func (uc *SubcategoryUseCase) Create(ctx context.Context, companyID int64, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if in.Name == "" || in.CategoryID == 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(ctx, companyID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrParentNotFound
	}
	subcategory := &entity.Subcategory{
		CompanyID:    companyID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		CategoryName: category.Name,
	}
	if err := uc.repo.Create(ctx, subcategory); err != nil {
		return nil, err
	}
	return entityToSubcategoryResponse(subcategory), nil
}

// Update renombra una subcategoría dentro de la empresa actuante.
func (uc *SubcategoryUseCase) Update(ctx context.Context, companyID, id int64, in dto.UpdateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	subcategory := &entity.Subcategory{ID: id, CompanyID: companyID, Name: in.Name}
	if err := uc.repo.Update(ctx, subcategory); err != nil {
		return nil, err
	}
	updated, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return entityToSubcategoryResponse(updated), nil
}

// Delete elimina la subcategoría; sus ítems caen por cascada. Las imágenes
// de esos ítems se intentan borrar del object store en best-effort.
func (uc *SubcategoryUseCase) Delete(ctx context.Context, companyID, id int64) error {
	keys, err := uc.itemRepo.ListImageKeysBySubcategory(ctx, companyID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	removeImages(ctx, uc.images, keys)
	return nil
}

func entityToSubcategoryResponse(s *entity.Subcategory) *dto.SubcategoryResponse {
	if s == nil {
		return nil
	}
	return &dto.SubcategoryResponse{
		ID:           s.ID,
		CategoryID:   s.CategoryID,
		Name:         s.Name,
		CategoryName: s.CategoryName,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
