package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// ListProducts lista productos con el nombre de su categoría (LEFT JOIN), ordenados por nombre.
// price y quantity pueden ser NULL: se devuelven con Valid=false.
func (r *ProductRepo) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.quantity, p.category_id, c.name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%')
		ORDER BY p.name, p.id`
	rows, err := r.q.Query(ctx, query, filter.NameContains)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		var (
			p            entity.Product
			qty          pgtype.Int8
			categoryID   pgtype.Text
			categoryName pgtype.Text
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &qty, &categoryID, &categoryName); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Quantity = entity.Quantity{Int: qty.Int64, Valid: qty.Valid}
		p.CategoryID = categoryID.String
		p.CategoryName = categoryName.String
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// InsertProduct persiste un nuevo producto y devuelve su id.
func (r *ProductRepo) InsertProduct(ctx context.Context, product *entity.Product) (string, error) {
	query := `
		INSERT INTO products (id, name, price, quantity, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var qty *int64
	if product.Quantity.Valid {
		qty = &product.Quantity.Int
	}
	var id string
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, qty, nullIfEmpty(product.CategoryID),
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", domain.ErrUnknownCategory
		}
		return "", fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// UpdateProduct escribe solo los campos no nil (COALESCE con el valor actual).
func (r *ProductRepo) UpdateProduct(ctx context.Context, id string, fields entity.ProductFields) error {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price),
		    quantity = COALESCE($4, quantity),
		    updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, fields.Name, fields.Price, fields.Quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteProduct elimina un producto por ID. Un id inexistente no es error.
func (r *ProductRepo) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
