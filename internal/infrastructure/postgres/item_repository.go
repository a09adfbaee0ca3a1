package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	"github.com/tu-usuario/catalogo-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	db DB
}

// NewItemRepository construye el adaptador de persistencia para ítems.
func NewItemRepository(db DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Create persiste un ítem. Devuelve domain.ErrDuplicate si el nombre ya
// existe en esa subcategoría y domain.ErrParentNotFound si la subcategoría
// referida no existe.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (company_id, subcategory_id, name, image_url, image_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		item.CompanyID, item.SubcategoryID, item.Name, item.ImageURL, item.ImageKey,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrParentNotFound
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID dentro de la empresa, con los nombres de
// subcategoría y categoría.
func (r *ItemRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Item, error) {
	query := `
		SELECT i.id, i.company_id, i.subcategory_id, i.name, i.image_url, i.image_key,
		       s.name, c.name, i.created_at, i.updated_at
		FROM items i
		JOIN subcategories s ON s.id = i.subcategory_id
		JOIN categories c ON c.id = s.category_id
		WHERE i.id = $1 AND i.company_id = $2`
	var it entity.Item
	err := r.db.QueryRow(ctx, query, id, companyID).Scan(
		&it.ID, &it.CompanyID, &it.SubcategoryID, &it.Name, &it.ImageURL, &it.ImageKey,
		&it.SubcategoryName, &it.CategoryName, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return &it, nil
}

// ListBySubcategory lista los ítems de una subcategoría de la empresa,
// ordenados por nombre.
func (r *ItemRepo) ListBySubcategory(ctx context.Context, companyID, subcategoryID int64) ([]*entity.Item, error) {
	query := `
		SELECT i.id, i.company_id, i.subcategory_id, i.name, i.image_url, i.image_key,
		       s.name, c.name, i.created_at, i.updated_at
		FROM items i
		JOIN subcategories s ON s.id = i.subcategory_id
		JOIN categories c ON c.id = s.category_id
		WHERE i.subcategory_id = $1 AND i.company_id = $2
		ORDER BY i.name`
	rows, err := r.db.Query(ctx, query, subcategoryID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.SubcategoryID, &it.Name, &it.ImageURL, &it.ImageKey,
			&it.SubcategoryName, &it.CategoryName, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListImageKeysBySubcategory devuelve las claves de imagen de los ítems de
// una subcategoría, para limpiarlas antes de un borrado en cascada.
func (r *ItemRepo) ListImageKeysBySubcategory(ctx context.Context, companyID, subcategoryID int64) ([]string, error) {
	query := `
		SELECT image_key FROM items
		WHERE subcategory_id = $1 AND company_id = $2 AND image_key IS NOT NULL`
	return r.listImageKeys(ctx, query, subcategoryID, companyID)
}

// ListImageKeysByCategory devuelve las claves de imagen de todos los ítems
// bajo una categoría (vía sus subcategorías).
func (r *ItemRepo) ListImageKeysByCategory(ctx context.Context, companyID, categoryID int64) ([]string, error) {
	query := `
		SELECT i.image_key FROM items i
		JOIN subcategories s ON s.id = i.subcategory_id
		WHERE s.category_id = $1 AND i.company_id = $2 AND i.image_key IS NOT NULL`
	return r.listImageKeys(ctx, query, categoryID, companyID)
}

func (r *ItemRepo) listImageKeys(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list image keys: %w", err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan image key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Update actualiza nombre e imagen re-verificando el tenant en el predicado.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $1, image_url = $2, image_key = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5`
	tag, err := r.db.Exec(ctx, query, item.Name, item.ImageURL, item.ImageKey, item.ID, item.CompanyID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un ítem de la empresa.
func (r *ItemRepo) Delete(ctx context.Context, companyID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
