package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StockRow fila de importación. Price y Quantity nil = celda vacía (dato ausente).
type StockRow struct {
	Line     int
	Name     string
	Category string
	Price    *decimal.Decimal
	Quantity *int64
}

// ImportSummary resultado de ImportStock.
type ImportSummary struct {
	Products   int
	Categories int // categorías creadas (las existentes se reutilizan por nombre)
}

// ParseStockCSV lee un CSV con cabecera name,category,price,quantity (en cualquier orden;
// el formato de WriteCSV también sirve: id y value se ignoran). Valida cada fila con las
// mismas reglas que el ledger y reporta la línea del primer error.
func ParseStockCSV(r io.Reader) ([]StockRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("import: cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, errors.New("import: falta la columna name")
	}
	cell := func(record []string, name string) string {
		if i, ok := cols[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	rows := make([]StockRow, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("import: línea %d: %w", line, err)
		}
		row := StockRow{Line: line, Name: cell(record, "name"), Category: cell(record, "category")}
		if err := inventory.ValidateName(row.Name); err != nil {
			return nil, fmt.Errorf("import: línea %d: %w", line, err)
		}
		if s := cell(record, "price"); s != "" {
			p, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("import: línea %d: precio %q: %w", line, s, err)
			}
			if err := inventory.ValidatePrice(p); err != nil {
				return nil, fmt.Errorf("import: línea %d: %w", line, err)
			}
			row.Price = &p
		}
		if s := cell(record, "quantity"); s != "" {
			q, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("import: línea %d: cantidad %q: %w", line, s, err)
			}
			if q < 0 {
				return nil, fmt.Errorf("import: línea %d: %w", line, domain.ErrInvalidQuantity)
			}
			row.Quantity = &q
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ImportStock inserta las filas en store. Las categorías se resuelven por nombre
// exacto; si no existe se crea. Categoría vacía o "none" = sin categoría.
// Atomicidad: el caller pasa un store atado a una transacción (postgres.TxRunner).
func ImportStock(ctx context.Context, store repository.Store, rows []StockRow) (ImportSummary, error) {
	var sum ImportSummary
	existing, err := store.ListCategories(ctx)
	if err != nil {
		return sum, domain.NewStoreError("list_categories", err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		if c == nil {
			continue
		}
		if _, ok := byName[c.Name]; !ok {
			byName[c.Name] = c.ID
		}
	}

	for _, row := range rows {
		categoryID := ""
		if row.Category != "" && row.Category != entity.NoCategoryKey {
			id, ok := byName[row.Category]
			if !ok {
				id, err = store.InsertCategory(ctx, &entity.Category{ID: uuid.NewString(), Name: row.Category})
				if err != nil {
					return sum, domain.NewStoreError("insert_category", err)
				}
				byName[row.Category] = id
				sum.Categories++
			}
			categoryID = id
		}

		p := &entity.Product{ID: uuid.NewString(), Name: row.Name, CategoryID: categoryID}
		if row.Price != nil {
			p.Price = decimal.NewNullDecimal(*row.Price)
		}
		if row.Quantity != nil {
			p.Quantity = entity.NewQuantity(*row.Quantity)
		}
		if _, err := store.InsertProduct(ctx, p); err != nil {
			return sum, fmt.Errorf("import: línea %d: %w", row.Line, domain.NewStoreError("insert_product", err))
		}
		sum.Products++
	}
	return sum, nil
}
