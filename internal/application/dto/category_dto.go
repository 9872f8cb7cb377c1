package dto

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// CreateCategoryRequest entrada para crear una categoría. El nombre no tiene que ser único.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewCategoryList mapea categorías a DTO.
func NewCategoryList(categories []entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out
}
