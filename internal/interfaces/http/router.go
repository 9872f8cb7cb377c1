package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/inventario-ledger/internal/application/analytics"
	appinventory "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *appinventory.Ledger
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *report.StockReportUseCase
	Metrics     *metrics.Metrics // opcional: sin él no se expone /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	validate := newValidator()
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Ledger, validate)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/quantity", productHandler.AdjustQuantity)
	products.Delete("/:id", productHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.Ledger, validate)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Reports
	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC)
		api.Get("/reports/stock.csv", reportHandler.StockCSV)
		api.Get("/reports/stock.pdf", reportHandler.StockPDF)
	}
}
