package inventory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// Resultados de operación para métricas.
const (
	outcomeOK         = "ok"
	outcomeInvalid    = "invalid"
	outcomeStoreError = "store_error"
)

// Recorder recibe las observaciones del ledger (implementado por infrastructure/metrics).
type Recorder interface {
	ObserveOperation(operation, outcome string)
	ObserveSnapshot(value float64, units int64, items int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string)     {}
func (nopRecorder) ObserveSnapshot(float64, int64, int) {}

// Result señal explícita de una mutación: Refresh indica que el snapshot
// quedó obsoleto y el caller debe recargar. ID es el id creado, si aplica.
type Result struct {
	ID      string
	Refresh bool
}

// CreateProductInput datos para dar de alta un producto. Price/Quantity nil = 0.
type CreateProductInput struct {
	Name       string
	Price      *decimal.Decimal
	Quantity   *int64
	CategoryID string
}

// Ledger construye el snapshot de cada ciclo de vista y traduce cada mutación
// en una instrucción al almacén. No guarda productos entre ciclos: cada lectura
// vuelve al almacén. No bloquea durante la ida y vuelta: dos ajustes
// simultáneos compiten por la misma cantidad base.
type Ledger struct {
	store repository.Store
	log   *logger.Logger
	rec   Recorder

	mu   sync.RWMutex
	view inventory.Query
}

// NewLedger construye el ledger. El ciclo de vida del store pertenece al caller.
func NewLedger(store repository.Store, log *logger.Logger, rec Recorder) *Ledger {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Ledger{store: store, log: log.Component("ledger"), rec: rec}
}

// LoadSnapshot lee productos (con su categoría, ordenados por nombre) y categorías.
// Ante un fallo del almacén devuelve un snapshot vacío junto al StoreError:
// el caller muestra un estado vacío en lugar de abortar.
func (l *Ledger) LoadSnapshot(ctx context.Context) (inventory.Snapshot, error) {
	products, err := l.store.ListProducts(ctx, repository.ProductFilter{})
	if err != nil {
		return l.degrade("list_products", err)
	}
	categories, err := l.store.ListCategories(ctx)
	if err != nil {
		return l.degrade("list_categories", err)
	}

	snap := inventory.Normalize(products, categories)
	agg := inventory.Aggregate(snap.Products)
	value, _ := agg.TotalValue.Float64()
	l.rec.ObserveSnapshot(value, agg.TotalCount, agg.ItemCount)
	l.rec.ObserveOperation("load_snapshot", outcomeOK)

	l.log.Debug().
		Int("products", len(snap.Products)).
		Int("categories", len(snap.Categories)).
		Msg("snapshot cargado")
	return snap, nil
}

func (l *Ledger) degrade(op string, err error) (inventory.Snapshot, error) {
	storeErr := domain.NewStoreError(op, err)
	l.rec.ObserveOperation("load_snapshot", outcomeStoreError)
	l.log.StoreFailure(zerolog.WarnLevel, op, err).Msg("carga del snapshot fallida, se muestra vacío")
	return inventory.Snapshot{Products: []entity.Product{}, Categories: []entity.Category{}}, storeErr
}

// Current abre un ciclo de vista: el snapshot se reconstruye siempre desde el
// almacén, así los cambios hechos fuera de este proceso (seed, otra réplica,
// SQL directo) se ven en la siguiente petición.
func (l *Ledger) Current(ctx context.Context) (inventory.Snapshot, error) {
	return l.LoadSnapshot(ctx)
}

// SetView fija los filtros activos de la vista.
func (l *Ledger) SetView(q inventory.Query) {
	l.mu.Lock()
	l.view = q
	l.mu.Unlock()
}

// View devuelve los filtros activos.
func (l *Ledger) View() inventory.Query {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.view
}

// Filter aplica la consulta sobre el snapshot (local, sin ir al almacén).
func (l *Ledger) Filter(snap inventory.Snapshot, q inventory.Query) []entity.Product {
	return inventory.Filter(snap.Products, q)
}

// Aggregate calcula los agregados de products.
func (l *Ledger) Aggregate(products []entity.Product) inventory.Aggregates {
	return inventory.Aggregate(products)
}

// Product busca un producto por id en un snapshot recién cargado.
// Es la base de AdjustQuantity y EditProduct.
func (l *Ledger) Product(ctx context.Context, id string) (entity.Product, error) {
	snap, err := l.Current(ctx)
	if err != nil {
		return entity.Product{}, err
	}
	for _, p := range snap.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, domain.ErrNotFound
}

// Categories devuelve las categorías de un snapshot recién cargado.
func (l *Ledger) Categories(ctx context.Context) ([]entity.Category, error) {
	snap, err := l.Current(ctx)
	if err != nil {
		return []entity.Category{}, err
	}
	return snap.Categories, nil
}

// AdjustQuantity aplica un delta relativo. Base = cantidad o 0 si es desconocida;
// si el resultado es negativo falla con ErrInvalidQuantity sin escribir.
// delta 0 reescribe el mismo valor.
func (l *Ledger) AdjustQuantity(ctx context.Context, product entity.Product, delta int64) (Result, error) {
	const op = "adjust_quantity"
	next, err := inventory.NextQuantity(product.Quantity, delta)
	if err != nil {
		return l.invalid(op, err)
	}
	if err := l.store.UpdateProduct(ctx, product.ID, entity.ProductFields{Quantity: &next}); err != nil {
		return l.storeFailed(op, err)
	}
	l.log.Debug().Str("product_id", product.ID).Int64("delta", delta).Int64("quantity", next).Msg("cantidad ajustada")
	return l.changed(op, product.ID)
}

// EditProduct cambia nombre y precio. Cantidad y categoría no se tocan.
func (l *Ledger) EditProduct(ctx context.Context, product entity.Product, newName string, newPrice decimal.Decimal) (Result, error) {
	const op = "edit_product"
	if err := inventory.ValidateName(newName); err != nil {
		return l.invalid(op, err)
	}
	if err := inventory.ValidatePrice(newPrice); err != nil {
		return l.invalid(op, err)
	}
	name := strings.TrimSpace(newName)
	if err := l.store.UpdateProduct(ctx, product.ID, entity.ProductFields{Name: &name, Price: &newPrice}); err != nil {
		return l.storeFailed(op, err)
	}
	return l.changed(op, product.ID)
}

// CreateProduct da de alta un producto. Precio y cantidad ausentes valen 0 y,
// presentes, no pueden ser negativos (misma regla que la edición). Las reglas
// locales se comprueban antes de ir al almacén; después la categoría debe
// existir en el conjunto recién cargado.
func (l *Ledger) CreateProduct(ctx context.Context, in CreateProductInput) (Result, error) {
	const op = "create_product"
	if err := inventory.ValidateName(in.Name); err != nil {
		return l.invalid(op, err)
	}
	price := decimal.Zero
	if in.Price != nil {
		price = *in.Price
	}
	if err := inventory.ValidatePrice(price); err != nil {
		return l.invalid(op, err)
	}
	var qty int64
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 0 {
		return l.invalid(op, domain.ErrInvalidQuantity)
	}
	if in.CategoryID == "" {
		return l.invalid(op, domain.ErrUnknownCategory)
	}

	snap, err := l.Current(ctx)
	if err != nil {
		l.rec.ObserveOperation(op, outcomeStoreError)
		return Result{}, err
	}
	if !snap.HasCategory(in.CategoryID) {
		return l.invalid(op, domain.ErrUnknownCategory)
	}

	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(in.Name),
		Price:      decimal.NewNullDecimal(price),
		Quantity:   entity.NewQuantity(qty),
		CategoryID: in.CategoryID,
	}
	id, err := l.store.InsertProduct(ctx, product)
	if err != nil {
		return l.storeFailed(op, err)
	}
	return l.changed(op, id)
}

// DeleteProduct elimina por id. Si el almacén falla, el producto se considera existente.
func (l *Ledger) DeleteProduct(ctx context.Context, productID string) (Result, error) {
	const op = "delete_product"
	if err := l.store.DeleteProduct(ctx, productID); err != nil {
		return l.storeFailed(op, err)
	}
	return l.changed(op, productID)
}

// CreateCategory crea una categoría. No se verifica unicidad del nombre.
func (l *Ledger) CreateCategory(ctx context.Context, name, description string) (Result, error) {
	const op = "create_category"
	if err := inventory.ValidateName(name); err != nil {
		return l.invalid(op, err)
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	id, err := l.store.InsertCategory(ctx, category)
	if err != nil {
		return l.storeFailed(op, err)
	}
	return l.changed(op, id)
}

func (l *Ledger) invalid(op string, err error) (Result, error) {
	l.rec.ObserveOperation(op, outcomeInvalid)
	return Result{}, err
}

func (l *Ledger) storeFailed(op string, err error) (Result, error) {
	if isDomainRejection(err) {
		l.rec.ObserveOperation(op, outcomeInvalid)
		return Result{}, err
	}
	l.rec.ObserveOperation(op, outcomeStoreError)
	l.log.StoreFailure(zerolog.ErrorLevel, op, err).Msg("el almacén rechazó la operación")
	return Result{}, domain.NewStoreError(op, err)
}

// isDomainRejection errores que el almacén traduce a reglas de dominio
// (fila inexistente, FK o CHECK violados); no son fallos de transporte.
func isDomainRejection(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrUnknownCategory) ||
		errors.Is(err, domain.ErrInvalidQuantity)
}

func (l *Ledger) changed(op, id string) (Result, error) {
	l.rec.ObserveOperation(op, outcomeOK)
	return Result{ID: id, Refresh: true}, nil
}
