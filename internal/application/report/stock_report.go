// Package report exporta la vista filtrada del inventario a CSV y PDF.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	appinventory "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

const reportTitle = "Reporte de existencias"

var csvHeader = []string{"id", "name", "category", "price", "quantity", "value"}

// StockReportUseCase arma el reporte de existencias de una consulta.
type StockReportUseCase struct {
	ledger    *appinventory.Ledger
	generator StockPDFGenerator
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso. generator puede ser nil si no se exporta PDF.
func NewStockReportUseCase(ledger *appinventory.Ledger, generator StockPDFGenerator) *StockReportUseCase {
	return &StockReportUseCase{ledger: ledger, generator: generator, now: time.Now}
}

// Build filtra el snapshot con q y calcula sus agregados.
// A diferencia del dashboard, un fallo del almacén se devuelve: un reporte vacío engañaría.
func (uc *StockReportUseCase) Build(ctx context.Context, q inventory.Query) (StockReport, error) {
	snap, err := uc.ledger.Current(ctx)
	if err != nil {
		return StockReport{}, err
	}
	products := uc.ledger.Filter(snap, q)
	return StockReport{
		Title:       reportTitle,
		GeneratedAt: uc.now(),
		Query:       q,
		Products:    products,
		Aggregates:  uc.ledger.Aggregate(products),
	}, nil
}

// CSV devuelve el reporte como text/csv junto al nombre de archivo sugerido.
func (uc *StockReportUseCase) CSV(ctx context.Context, q inventory.Query) ([]byte, string, error) {
	rep, err := uc.Build(ctx, q)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep.Products); err != nil {
		return nil, "", fmt.Errorf("report: csv: %w", err)
	}
	return buf.Bytes(), filename(rep.GeneratedAt, "csv"), nil
}

// PDF devuelve el reporte en PDF junto al nombre de archivo sugerido.
func (uc *StockReportUseCase) PDF(ctx context.Context, q inventory.Query) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", errors.New("report: generador PDF no configurado")
	}
	rep, err := uc.Build(ctx, q)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateStockPDF(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("report: pdf: %w", err)
	}
	return doc, filename(rep.GeneratedAt, "pdf"), nil
}

// WriteCSV escribe una fila por producto. Precio o cantidad ausentes quedan como
// celda vacía (distinto de 0); value usa 0 para los ausentes.
func WriteCSV(w io.Writer, products []entity.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		price := ""
		if p.Price.Valid {
			price = p.Price.Decimal.StringFixed(2)
		}
		qty := ""
		if p.Quantity.Valid {
			qty = strconv.FormatInt(p.Quantity.Int, 10)
		}
		record := []string{p.ID, p.Name, p.CategoryName, price, qty, p.Value().StringFixed(2)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func filename(t time.Time, ext string) string {
	return "stock_" + t.Format("20060102_150405") + "." + ext
}
