// Package inventory contiene las reglas puras del inventario: normalización del
// snapshot, filtro local, guardas de cantidad/nombre/precio y agregados.
// Nada aquí accede al almacén.
package inventory

import (
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Snapshot copia en memoria de productos (ordenados por nombre) y categorías
// para un ciclo de vista. No sobrevive al ciclo.
type Snapshot struct {
	Products   []entity.Product
	Categories []entity.Category
}

// Empty true si no hay productos ni categorías.
func (s Snapshot) Empty() bool {
	return len(s.Products) == 0 && len(s.Categories) == 0
}

// HasCategory true si id pertenece al conjunto de categorías.
func (s Snapshot) HasCategory(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range s.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Normalize construye el Snapshot a partir de lo leído del almacén.
// Es el único punto donde se resuelven ausencias: el nombre de categoría
// queda siempre definido (NoCategoryKey si no hay) y Price/Quantity conservan
// su marca Valid para que el resto use PriceOrZero / OrZero sin chequeos.
func Normalize(products []*entity.Product, categories []*entity.Category) Snapshot {
	names := make(map[string]string, len(categories))
	cats := make([]entity.Category, 0, len(categories))
	for _, c := range categories {
		if c == nil {
			continue
		}
		names[c.ID] = c.Name
		cats = append(cats, *c)
	}

	list := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		np := *p
		switch {
		case np.CategoryID == "":
			np.CategoryName = entity.NoCategoryKey
		case np.CategoryName == "":
			if name, ok := names[np.CategoryID]; ok {
				np.CategoryName = name
			} else {
				// referencia a una categoría que ya no existe: cuenta como sin categoría
				np.CategoryID = ""
				np.CategoryName = entity.NoCategoryKey
			}
		}
		list = append(list, np)
	}
	return Snapshot{Products: list, Categories: cats}
}
