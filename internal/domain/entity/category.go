package entity

// Category representa una categoría de productos.
// Se crea por acción explícita; no se modifica ni se elimina.
// El nombre no es único: las agregaciones se indexan por ID.
type Category struct {
	ID          string
	Name        string
	Description string // opcional
}
