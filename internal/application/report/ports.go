package report

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// StockReport datos de un reporte de existencias ya filtrados y agregados.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	Query       inventory.Query
	Products    []entity.Product
	Aggregates  inventory.Aggregates
}

// StockPDFGenerator genera la representación PDF del reporte (implementado con Maroto en infrastructure/pdf).
type StockPDFGenerator interface {
	GenerateStockPDF(ctx context.Context, report StockReport) ([]byte, error)
}
