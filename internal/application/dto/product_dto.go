package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. price y quantity son opcionales (0 por defecto).
// Nombre vacío, precio/cantidad negativos y categoría inexistente los rechaza el ledger.
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"max=200"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,money"`
	Quantity   *int64           `json:"quantity"`
	CategoryID string           `json:"category_id" validate:"max=64"`
}

// UpdateProductRequest edición de nombre y precio; cantidad y categoría no se tocan.
// price es obligatorio: omitirlo no equivale a 0.
type UpdateProductRequest struct {
	Name  string           `json:"name" validate:"max=200"`
	Price *decimal.Decimal `json:"price" validate:"required,money"`
}

// AdjustQuantityRequest delta relativo sobre la cantidad actual (puede ser negativo,
// acotado a ±1e9 por ajuste).
type AdjustQuantityRequest struct {
	Delta int64 `json:"delta" validate:"min=-1000000000,max=1000000000"`
}

// ProductResponse salida de un producto. price y quantity son null cuando el dato falta.
type ProductResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     *int64           `json:"quantity"`
	Value        decimal.Decimal  `json:"value"`
	CategoryID   string           `json:"category_id,omitempty"`
	CategoryName string           `json:"category_name"`
}

// ProductListResponse lista filtrada del snapshot. Degraded indica que el
// almacén no respondió y la lista se muestra vacía.
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Total    int               `json:"total"`
	Degraded bool              `json:"degraded,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// NewProductResponse mapea la entidad a su DTO.
func NewProductResponse(p entity.Product) ProductResponse {
	out := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Value:        p.Value(),
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
	if p.Price.Valid {
		price := p.Price.Decimal
		out.Price = &price
	}
	if p.Quantity.Valid {
		qty := p.Quantity.Int
		out.Quantity = &qty
	}
	return out
}

// NewProductListResponse mapea una lista de productos; nunca devuelve Items nil.
func NewProductListResponse(products []entity.Product) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, NewProductResponse(p))
	}
	return ProductListResponse{Items: items, Total: len(items)}
}
