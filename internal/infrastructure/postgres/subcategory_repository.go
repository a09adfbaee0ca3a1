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

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo implementación del puerto SubcategoryRepository sobre PostgreSQL.
type SubcategoryRepo struct {
	db DB
}

// NewSubcategoryRepository construye el adaptador de persistencia para subcategorías.
func NewSubcategoryRepository(db DB) *SubcategoryRepo {
	return &SubcategoryRepo{db: db}
}

// Create persiste una subcategoría. Devuelve domain.ErrDuplicate si el
// nombre ya existe en esa categoría y domain.ErrParentNotFound si la
// categoría referida no existe.
func (r *SubcategoryRepo) Create(ctx context.Context, subcategory *entity.Subcategory) error {
	query := `
		INSERT INTO subcategories (company_id, category_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, subcategory.CompanyID, subcategory.CategoryID, subcategory.Name).
		Scan(&subcategory.ID, &subcategory.CreatedAt, &subcategory.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrParentNotFound
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

// GetByID obtiene una subcategoría por ID dentro de la empresa, con el
// nombre de su categoría.
func (r *SubcategoryRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Subcategory, error) {
	query := `
		SELECT s.id, s.company_id, s.category_id, s.name, c.name, s.created_at, s.updated_at
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.id = $1 AND s.company_id = $2`
	var s entity.Subcategory
	err := r.db.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.CategoryID, &s.Name, &s.CategoryName, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory by id: %w", err)
	}
	return &s, nil
}

// ListByCategory lista subcategorías de una categoría de la empresa,
// ordenadas por nombre.
func (r *SubcategoryRepo) ListByCategory(ctx context.Context, companyID, categoryID int64) ([]*entity.Subcategory, error) {
	query := `
		SELECT s.id, s.company_id, s.category_id, s.name, c.name, s.created_at, s.updated_at
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.category_id = $1 AND s.company_id = $2
		ORDER BY s.name`
	rows, err := r.db.Query(ctx, query, categoryID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.CategoryID, &s.Name, &s.CategoryName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update renombra una subcategoría re-verificando el tenant en el predicado.
func (r *SubcategoryRepo) Update(ctx context.Context, subcategory *entity.Subcategory) error {
	query := `
		UPDATE subcategories SET name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3`
	tag, err := r.db.Exec(ctx, query, subcategory.Name, subcategory.ID, subcategory.CompanyID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una subcategoría de la empresa; el store cascadea sus ítems.
func (r *SubcategoryRepo) Delete(ctx context.Context, companyID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subcategories WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
