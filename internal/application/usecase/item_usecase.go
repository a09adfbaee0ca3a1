package usecase

import (
	"context"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	"github.com/tu-usuario/catalogo-api/internal/domain/repository"
)

// ItemUseCase CRUD de ítems con ciclo de vida de su imagen: la fila manda,
// la imagen acompaña. Los borrados en el object store son best-effort.
type ItemUseCase struct {
	repo            repository.ItemRepository
	subcategoryRepo repository.SubcategoryRepository
	images          ImageStore
}

// NewItemUseCase construye el caso de uso de ítems.
func NewItemUseCase(repo repository.ItemRepository, subcategoryRepo repository.SubcategoryRepository, images ImageStore) *ItemUseCase {
	return &ItemUseCase{repo: repo, subcategoryRepo: subcategoryRepo, images: images}
}

// ListBySubcategory lista los ítems de una subcategoría de la empresa.
func (uc *ItemUseCase) ListBySubcategory(ctx context.Context, companyID, subcategoryID int64) (*dto.ItemListResponse, error) {
	subcategory, err := uc.subcategoryRepo.GetByID(ctx, companyID, subcategoryID)
	if err != nil {
		return nil, err
	}
	if subcategory == nil {
		return nil, domain.ErrParentNotFound
	}
	list, err := uc.repo.ListBySubcategory(ctx, companyID, subcategoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *entityToItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items}, nil
}

// Create crea un ítem, subiendo antes la imagen si viene. Si el insert falla
// después de subir, la imagen recién subida se intenta borrar para no dejar
// huérfanos desde el primer momento.
func (uc *ItemUseCase) Create(ctx context.Context, companyID int64, in dto.CreateItemRequest, upload *ImageUpload) (*dto.ItemResponse, error) {
	if in.Name == "" || in.SubcategoryID == 0 {
		return nil, domain.ErrInvalidInput
	}
	subcategory, err := uc.subcategoryRepo.GetByID(ctx, companyID, in.SubcategoryID)
	if err != nil {
		return nil, err
	}
	if subcategory == nil {
		return nil, domain.ErrParentNotFound
	}

	item := &entity.Item{
		CompanyID:       companyID,
		SubcategoryID:   in.SubcategoryID,
		Name:            in.Name,
		SubcategoryName: subcategory.Name,
		CategoryName:    subcategory.CategoryName,
	}
	if upload != nil {
		stored, err := uc.images.Store(ctx, upload.Reader, upload.Size, upload.ContentType, upload.Filename)
		if err != nil {
			return nil, err
		}
		item.ImageURL = &stored.URL
		item.ImageKey = &stored.Key
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		if item.ImageKey != nil {
			removeImages(ctx, uc.images, []string{*item.ImageKey})
		}
		return nil, err
	}
	return entityToItemResponse(item), nil
}

// Update renombra un ítem y, si viene imagen nueva, la sube y reemplaza la
// anterior. El borrado de la imagen vieja se intenta después de persistir y
// nunca hace fallar la operación principal.
func (uc *ItemUseCase) Update(ctx context.Context, companyID, id int64, in dto.UpdateItemRequest, upload *ImageUpload) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	item := &entity.Item{
		ID:        id,
		CompanyID: companyID,
		Name:      in.Name,
		ImageURL:  current.ImageURL,
		ImageKey:  current.ImageKey,
	}
	var oldKey *string
	if upload != nil {
		stored, err := uc.images.Store(ctx, upload.Reader, upload.Size, upload.ContentType, upload.Filename)
		if err != nil {
			return nil, err
		}
		oldKey = current.ImageKey
		item.ImageURL = &stored.URL
		item.ImageKey = &stored.Key
	}

	if err := uc.repo.Update(ctx, item); err != nil {
		if upload != nil && item.ImageKey != nil {
			removeImages(ctx, uc.images, []string{*item.ImageKey})
		}
		return nil, err
	}
	if oldKey != nil {
		removeImages(ctx, uc.images, []string{*oldKey})
	}

	updated, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return entityToItemResponse(updated), nil
}

// Delete elimina el ítem y luego intenta borrar su imagen del object store.
func (uc *ItemUseCase) Delete(ctx context.Context, companyID, id int64) error {
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	if current.ImageKey != nil {
		removeImages(ctx, uc.images, []string{*current.ImageKey})
	}
	return nil
}

func entityToItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:              it.ID,
		SubcategoryID:   it.SubcategoryID,
		Name:            it.Name,
		ImageURL:        it.ImageURL,
		SubcategoryName: it.SubcategoryName,
		CategoryName:    it.CategoryName,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}
