package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// ListCategories lista todas las categorías ordenadas por nombre.
func (r *CategoryRepo) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Category, 0)
	for rows.Next() {
		var (
			c    entity.Category
			desc pgtype.Text
		)
		if err := rows.Scan(&c.ID, &c.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Description = desc.String
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// InsertCategory persiste una categoría. El nombre no es único.
func (r *CategoryRepo) InsertCategory(ctx context.Context, category *entity.Category) (string, error) {
	var id string
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (id, name, description) VALUES ($1, $2, $3) RETURNING id`,
		category.ID, category.Name, nullIfEmpty(category.Description),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert category: %w", err)
	}
	return id, nil
}
