// Package pdf genera el reporte de existencias en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + filtros       │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: productos / unidades / valor                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Precio | Cant. | Valor       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: productos con cantidad <= 5                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.StockPDFGenerator = (*MarotoStockGenerator)(nil)

// MarotoStockGenerator implementa report.StockPDFGenerator usando Maroto v2.
type MarotoStockGenerator struct{}

// NewMarotoStockGenerator construye el generador.
func NewMarotoStockGenerator() *MarotoStockGenerator { return &MarotoStockGenerator{} }

// GenerateStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStockGenerator) GenerateStockPDF(_ context.Context, rep report.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(rep.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(rep.Aggregates))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(rep.Products) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos para los filtros actuales", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(productRows(rep.Products)...)

	if len(rep.Aggregates.LowStock) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(lowStockRows(rep.Aggregates.LowStock)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y filtros (izq), fecha (der).
func headerRow(rep report.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(rep.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Filtros: "+describeQuery(rep.Query), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func totalsRow(agg inventory.Aggregates) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		kpi("Productos", strconv.Itoa(agg.ItemCount)),
		kpi("Unidades", strconv.FormatInt(agg.TotalCount, 10)),
		kpi("Valor total", formatMoney(agg.TotalValue)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Precio", 2, align.Right),
		h("Cant.", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

// productRows: una fila por producto; precio o cantidad ausentes se muestran como "—".
func productRows(products []entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		price := "—"
		if p.Price.Valid {
			price = formatMoney(p.Price.Decimal)
		}
		qty := "—"
		if p.Quantity.Valid {
			qty = strconv.FormatInt(p.Quantity.Int, 10)
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(p.CategoryName, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(p.Value()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func lowStockRows(products []entity.Product) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("STOCK BAJO (cantidad <= %d)", inventory.LowStockThreshold), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorAlert, Top: 1,
			}),
		)),
	}
	for _, p := range products {
		rows = append(rows, row.New(5).Add(
			col.New(9).Add(text.New(p.Name, props.Text{Size: 8, Left: 2})),
			col.New(3).Add(text.New(p.Quantity.String(), props.Text{Size: 8, Align: align.Right, Right: 1, Color: colorAlert})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func describeQuery(q inventory.Query) string {
	parts := make([]string, 0, 3)
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("texto %q", q.Text))
	}
	if q.CategoryID != "" {
		parts = append(parts, "categoría id "+q.CategoryID)
	} else if q.CategoryName != "" && q.CategoryName != inventory.AllCategories {
		parts = append(parts, "categoría "+q.CategoryName)
	}
	if len(parts) == 0 {
		return "todos los productos"
	}
	return strings.Join(parts, ", ")
}

// formatMoney redondea a 2 decimales e inserta puntos de miles en la parte entera.
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
