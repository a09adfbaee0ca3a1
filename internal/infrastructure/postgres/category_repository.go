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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// Toda sentencia lleva company_id en su predicado: el aislamiento de tenant
// se aplica en el WHERE de la mutación, no solo al cargar la entidad.
type CategoryRepo struct {
	db DB
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(db DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create persiste una categoría. Devuelve domain.ErrDuplicate si el nombre
// ya existe en la empresa.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (company_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, category.CompanyID, category.Name).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID dentro de la empresa. Una fila de
// otra empresa es indistinguible de una inexistente: nil.
func (r *CategoryRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Category, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM categories WHERE id = $1 AND company_id = $2`
	var c entity.Category
	err := r.db.QueryRow(ctx, query, id, companyID).Scan(&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	return &c, nil
}

// GetByName obtiene una categoría por nombre dentro de la empresa.
func (r *CategoryRepo) GetByName(ctx context.Context, companyID int64, name string) (*entity.Category, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM categories WHERE company_id = $1 AND name = $2`
	var c entity.Category
	err := r.db.QueryRow(ctx, query, companyID, name).Scan(&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// ListByCompany lista categorías de la empresa ordenadas por nombre.
func (r *CategoryRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Category, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM categories WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update renombra una categoría. El predicado re-verifica el tenant: cero
// filas afectadas (incluida una fila ajena) es domain.ErrNotFound.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories SET name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3`
	tag, err := r.db.Exec(ctx, query, category.Name, category.ID, category.CompanyID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una categoría de la empresa; el store cascadea
// subcategorías e ítems.
func (r *CategoryRepo) Delete(ctx context.Context, companyID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
