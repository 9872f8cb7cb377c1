package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

const (
	LowStockThreshold = 5 // cantidad <= umbral = stock bajo
	TopValueLimit     = 5 // productos en el ranking por valor
)

// CategoryTotal acumulado de una categoría. Key es el ID (o NoCategoryKey);
// Name solo se usa para mostrar.
type CategoryTotal struct {
	Key      string
	Name     string
	Quantity int64
	Value    decimal.Decimal
}

// Aggregates estadísticas derivadas de una secuencia de productos.
type Aggregates struct {
	TotalValue         decimal.Decimal
	TotalCount         int64
	ItemCount          int
	ByCategoryQuantity map[string]int64
	ByCategoryValue    map[string]decimal.Decimal
	Categories         []CategoryTotal // mismo contenido que los mapas, ordenado por nombre y clave
	LowStock           []entity.Product
	TopValue           []entity.Product
}

// Aggregate calcula los agregados sobre products (ausentes = 0). Función pura.
// Los totales y mapas no dependen del orden de entrada; solo los desempates
// de LowStock y TopValue lo hacen.
func Aggregate(products []entity.Product) Aggregates {
	agg := Aggregates{
		TotalValue:         decimal.Zero,
		ItemCount:          len(products),
		ByCategoryQuantity: make(map[string]int64),
		ByCategoryValue:    make(map[string]decimal.Decimal),
	}
	names := make(map[string]string)

	for _, p := range products {
		qty := p.Quantity.OrZero()
		value := p.Value()
		key := p.CategoryKey()

		agg.TotalValue = agg.TotalValue.Add(value)
		agg.TotalCount += qty
		agg.ByCategoryQuantity[key] += qty
		if v, ok := agg.ByCategoryValue[key]; ok {
			agg.ByCategoryValue[key] = v.Add(value)
		} else {
			agg.ByCategoryValue[key] = value
		}
		if _, ok := names[key]; !ok {
			names[key] = displayCategory(p)
		}
	}

	agg.Categories = make([]CategoryTotal, 0, len(names))
	for key, name := range names {
		agg.Categories = append(agg.Categories, CategoryTotal{
			Key:      key,
			Name:     name,
			Quantity: agg.ByCategoryQuantity[key],
			Value:    agg.ByCategoryValue[key],
		})
	}
	sort.Slice(agg.Categories, func(i, j int) bool {
		a, b := agg.Categories[i], agg.Categories[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Key < b.Key
	})

	agg.LowStock = LowStock(products)
	agg.TopValue = TopValue(products, TopValueLimit)
	return agg
}

// LowStock productos con cantidad <= LowStockThreshold, ascendente por cantidad (estable).
func LowStock(products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.Quantity.OrZero() <= LowStockThreshold {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quantity.OrZero() < out[j].Quantity.OrZero()
	})
	return out
}

// TopValue los n productos de mayor precio*cantidad, descendente; empates por orden original.
func TopValue(products []entity.Product, n int) []entity.Product {
	if n <= 0 {
		return []entity.Product{}
	}
	sorted := make([]entity.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value().GreaterThan(sorted[j].Value())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func displayCategory(p entity.Product) string {
	if p.CategoryID == "" || p.CategoryName == "" {
		return entity.NoCategoryKey
	}
	return p.CategoryName
}
