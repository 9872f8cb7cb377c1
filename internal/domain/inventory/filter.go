package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// AllCategories selector de categoría que desactiva el filtro por nombre.
const AllCategories = "all"

// Query filtros de la vista.
// CategoryName vacío equivale a AllCategories. CategoryID, si se indica,
// tiene prioridad sobre CategoryName (los nombres pueden repetirse).
type Query struct {
	Text         string
	CategoryName string
	CategoryID   string
}

// Filter aplica el filtro local sobre products, en orden:
//  1. subcadena de Text en el nombre, sin distinguir mayúsculas (case folding Unicode)
//  2. coincidencia exacta de categoría (por ID, o por nombre si no hay ID)
//
// Conserva el orden de entrada y nunca devuelve nil.
func Filter(products []entity.Product, q Query) []entity.Product {
	folder := cases.Fold()
	needle := ""
	if q.Text != "" {
		needle = folder.String(q.Text)
	}
	byName := q.CategoryName != "" && q.CategoryName != AllCategories

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(folder.String(p.Name), needle) {
			continue
		}
		if q.CategoryID != "" {
			if p.CategoryKey() != q.CategoryID {
				continue
			}
		} else if byName && p.CategoryName != q.CategoryName {
			continue
		}
		out = append(out, p)
	}
	return out
}
