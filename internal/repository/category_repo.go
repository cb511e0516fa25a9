package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"fncs-api/internal/domain"
)

// CategoryRepository define el contrato de persistencia para categorías.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (domain.Category, error)
	Create(ctx context.Context, name string, description *string, isActive bool) (domain.Category, error)
	Update(ctx context.Context, id int64, patch domain.CategoryPatch) (domain.Category, error)
	Delete(ctx context.Context, id int64) (string, error)
}

const categoryColumns = "id, name, description, is_active, created_at, updated_at"

// PgCategoryRepository implementa CategoryRepository usando pgxpool.
type PgCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgCategoryRepository(pool *pgxpool.Pool) *PgCategoryRepository {
	return &PgCategoryRepository{pool: pool}
}

func (r *PgCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories ORDER BY id ASC", categoryColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PgCategoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories WHERE id = $1", categoryColumns)
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (r *PgCategoryRepository) Create(ctx context.Context, name string, description *string, isActive bool) (domain.Category, error) {
	query := fmt.Sprintf(`
		INSERT INTO categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, categoryColumns)
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, name, description, isActive).Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (r *PgCategoryRepository) Update(ctx context.Context, id int64, patch domain.CategoryPatch) (domain.Category, error) {
	setClauses := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if patch.Name != nil {
		args = append(args, *patch.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", len(args)))
	}
	if patch.IsActive != nil {
		args = append(args, *patch.IsActive)
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", len(args)))
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE categories SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), categoryColumns,
	)

	var c domain.Category
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (r *PgCategoryRepository) Delete(ctx context.Context, id int64) (string, error) {
	const query = "DELETE FROM categories WHERE id = $1 RETURNING name"
	var name string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}
