package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// ReportHandler descargas del reporte de existencias.
type ReportHandler struct {
	uc *report.StockReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.StockReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockCSV godoc
// @Summary      Reporte de existencias en CSV
// @Tags         reports
// @Produce      text/csv
// @Param        q         query  string  false  "Texto contenido en el nombre"
// @Param        category  query  string  false  "Nombre de categoría o all"
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.csv [get]
func (h *ReportHandler) StockCSV(c *fiber.Ctx) error {
	return h.download(c, "text/csv; charset=utf-8", h.uc.CSV)
}

// StockPDF godoc
// @Summary      Reporte de existencias en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	return h.download(c, "application/pdf", h.uc.PDF)
}

func (h *ReportHandler) download(
	c *fiber.Ctx,
	contentType string,
	render func(context.Context, inventory.Query) ([]byte, string, error),
) error {
	body, name, err := render(c.UserContext(), viewQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}
