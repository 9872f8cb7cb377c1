package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Los totales se calculan sobre la vista filtrada (q, category).
type DashboardSummaryDTO struct {
	ItemCount  int             `json:"item_count"`
	TotalUnits int64           `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"` // redondeado a 2 decimales

	Categories []CategoryTotalDTO `json:"categories"`
	LowStock   []ProductResponse  `json:"low_stock"` // cantidad <= 5, de menor a mayor
	TopValue   []ProductResponse  `json:"top_value"` // top 5 por precio*cantidad

	// Degraded indica que el almacén falló al cargar: todo lo anterior está vacío.
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
}

// CategoryTotalDTO desglose por categoría (clave "none" para productos sin categoría).
type CategoryTotalDTO struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}
