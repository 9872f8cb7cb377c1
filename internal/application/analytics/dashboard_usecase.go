// Package analytics contiene el caso de uso del Dashboard de inventario:
// KPIs de la vista filtrada a partir del snapshot del ledger.
package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// DashboardUseCase genera el resumen de inventario de la vista activa.
type DashboardUseCase struct {
	ledger *appinventory.Ledger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(ledger *appinventory.Ledger) *DashboardUseCase {
	return &DashboardUseCase{ledger: ledger}
}

// GetSummary construye el DashboardSummaryDTO para la consulta q, que pasa a ser la vista activa.
//
// Si el almacén falla al cargar, devuelve un resumen vacío con Degraded=true
// en lugar de un error.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, q inventory.Query) (*dto.DashboardSummaryDTO, error) {
	uc.ledger.SetView(q)

	snap, err := uc.ledger.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStore) {
			return degradedSummary(err), nil
		}
		return nil, fmt.Errorf("dashboard: snapshot: %w", err)
	}

	agg := uc.ledger.Aggregate(uc.ledger.Filter(snap, q))
	return summaryFrom(agg), nil
}

func summaryFrom(agg inventory.Aggregates) *dto.DashboardSummaryDTO {
	out := &dto.DashboardSummaryDTO{
		ItemCount:  agg.ItemCount,
		TotalUnits: agg.TotalCount,
		TotalValue: agg.TotalValue.Round(2),
		Categories: make([]dto.CategoryTotalDTO, 0, len(agg.Categories)),
		LowStock:   dto.NewProductListResponse(agg.LowStock).Items,
		TopValue:   dto.NewProductListResponse(agg.TopValue).Items,
	}
	for _, c := range agg.Categories {
		out.Categories = append(out.Categories, dto.CategoryTotalDTO{
			Key:      c.Key,
			Name:     c.Name,
			Quantity: c.Quantity,
			Value:    c.Value.Round(2),
		})
	}
	return out
}

func degradedSummary(err error) *dto.DashboardSummaryDTO {
	out := summaryFrom(inventory.Aggregate(nil))
	out.Degraded = true
	out.Message = err.Error()
	return out
}
