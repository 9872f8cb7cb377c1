package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	InsertCategory(ctx context.Context, category *entity.Category) (string, error)
}

// Store es el colaborador externo completo que consume el Ledger.
type Store interface {
	ProductRepository
	CategoryRepository
}
