package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductFilter filtro opcional para el listado en el almacén.
// NameContains aplica ILIKE '%...%' del lado del servidor.
type ProductFilter struct {
	NameContains string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// ListProducts resuelve el nombre de la categoría con un join y ordena por nombre.
type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	InsertProduct(ctx context.Context, product *entity.Product) (string, error)
	UpdateProduct(ctx context.Context, id string, fields entity.ProductFields) error
	DeleteProduct(ctx context.Context, id string) error
}
