// Package memory implementa repository.Store en memoria, para desarrollo sin
// base de datos (STORE_DRIVER=memory) y para tests de las capas superiores.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu         sync.RWMutex
	products   map[string]entity.Product
	categories map[string]entity.Category
	writes     int
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		categories: make(map[string]entity.Category),
	}
}

// Seed carga datos iniciales sin contar como escrituras.
func (s *Store) Seed(categories []entity.Category, products []entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
}

// Writes número de escrituras (insert/update/delete) recibidas.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Get devuelve una copia del producto guardado.
func (s *Store) Get(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// ListProducts devuelve los productos ordenados por nombre con la categoría resuelta.
func (s *Store) ListProducts(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(filter.NameContains)
	list := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		cp := p
		cp.CategoryName = ""
		if c, ok := s.categories[p.CategoryID]; ok {
			cp.CategoryName = c.Name
		}
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// ListCategories devuelve las categorías ordenadas por nombre.
func (s *Store) ListCategories(_ context.Context) ([]*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := c
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// InsertProduct guarda el producto con el id que trae.
func (s *Store) InsertProduct(_ context.Context, product *entity.Product) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if _, ok := s.products[product.ID]; ok {
		return "", errDuplicate
	}
	p := *product
	p.CategoryName = ""
	s.products[p.ID] = p
	return p.ID, nil
}

// UpdateProduct aplica los campos no nil.
func (s *Store) UpdateProduct(_ context.Context, id string, fields entity.ProductFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Price != nil {
		p.Price.Decimal = *fields.Price
		p.Price.Valid = true
	}
	if fields.Quantity != nil {
		p.Quantity = entity.NewQuantity(*fields.Quantity)
	}
	s.products[id] = p
	return nil
}

// DeleteProduct elimina por id; borrar un id inexistente no es error.
func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	delete(s.products, id)
	return nil
}

// InsertCategory guarda la categoría con el id que trae.
func (s *Store) InsertCategory(_ context.Context, category *entity.Category) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if _, ok := s.categories[category.ID]; ok {
		return "", errDuplicate
	}
	s.categories[category.ID] = *category
	return category.ID, nil
}
