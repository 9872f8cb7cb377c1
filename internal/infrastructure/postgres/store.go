package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store agrupa los repositorios de productos y categorías como el colaborador
// único que consume el Ledger.
type Store struct {
	*ProductRepo
	*CategoryRepo
	q Querier
}

// NewStore construye el almacén sobre un pool o tx.
func NewStore(q Querier) *Store {
	return &Store{
		ProductRepo:  NewProductRepository(q),
		CategoryRepo: NewCategoryRepository(q),
		q:            q,
	}
}

// schema tablas mínimas. price y quantity admiten NULL (datos heredados);
// los CHECK impiden valores negativos.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL CHECK (name <> ''),
    description TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL CHECK (name <> ''),
    price       NUMERIC(12, 2) CHECK (price >= 0),
    quantity    BIGINT CHECK (quantity >= 0),
    category_id TEXT REFERENCES categories (id),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products (name);
CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id);
`

// EnsureSchema crea las tablas si no existen (DB_AUTO_MIGRATE=true).
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
