package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los de validación se detectan localmente y nunca llegan al almacén.
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidQuantity = errors.New("la cantidad no puede quedar negativa")
	ErrQuantityRange   = errors.New("la cantidad excede el rango permitido")
	ErrInvalidName     = errors.New("el nombre no puede estar vacío")
	ErrInvalidPrice    = errors.New("el precio no puede ser negativo")
	ErrUnknownCategory = errors.New("categoría inexistente")
	ErrStore           = errors.New("error del almacén de datos")
)

// StoreError envuelve cualquier fallo de transporte o consulta del almacén externo.
// errors.Is(err, ErrStore) identifica el tipo; Unwrap devuelve el error original.
type StoreError struct {
	Op  string // operación del almacén: list_products, update_product, ...
	Err error
}

// NewStoreError envuelve err; devuelve nil si err es nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return ErrStore.Error() + " (" + e.Op + "): " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStore).
func (e *StoreError) Is(target error) bool { return target == ErrStore }
