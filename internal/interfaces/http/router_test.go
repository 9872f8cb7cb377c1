package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var errDown = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

// flakyStore falla listados o escrituras según los flags.
type flakyStore struct {
	*memory.Store
	failList   bool
	failWrites bool
}

func (s *flakyStore) ListProducts(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	if s.failList {
		return nil, errDown
	}
	return s.Store.ListProducts(ctx, f)
}

func (s *flakyStore) UpdateProduct(ctx context.Context, id string, fields entity.ProductFields) error {
	if s.failWrites {
		return errDown
	}
	return s.Store.UpdateProduct(ctx, id, fields)
}

func (s *flakyStore) DeleteProduct(ctx context.Context, id string) error {
	if s.failWrites {
		return errDown
	}
	return s.Store.DeleteProduct(ctx, id)
}

func seededStore() *memory.Store {
	st := memory.NewStore()
	st.Seed(
		[]entity.Category{{ID: "cat-office", Name: "Office"}, {ID: "cat-tools", Name: "Tools"}},
		[]entity.Product{
			{ID: "p-stapler", Name: "Stapler", Price: decimal.NewNullDecimal(decimal.RequireFromString("12.50")), Quantity: entity.NewQuantity(4), CategoryID: "cat-office"},
			{ID: "p-hammer", Name: "Hammer", Price: decimal.NewNullDecimal(decimal.NewFromInt(30)), Quantity: entity.NewQuantity(10), CategoryID: "cat-tools"},
			{ID: "p-frame", Name: "Frame"},
		},
	)
	return st
}

// buildTestApp arma la aplicación completa sobre el almacén indicado.
func buildTestApp(st repository.Store) (*fiber.App, *metrics.Metrics) {
	m := metrics.New("test")
	ledger := appinventory.NewLedger(st, nil, m)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:      ledger,
		DashboardUC: appanalytics.NewDashboardUseCase(ledger),
		ReportUC:    report.NewStockReportUseCase(ledger, pdf.NewMarotoStockGenerator()),
		Metrics:     m,
	})
	return app, m
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func productNames(list dto.ProductListResponse) []string {
	names := make([]string, 0, len(list.Items))
	for _, p := range list.Items {
		names = append(names, p.Name)
	}
	return names
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_OrdenadoConCamposAusentesEnNull(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)

	assert.Equal(t, []string{"Frame", "Hammer", "Stapler"}, productNames(list))
	assert.Equal(t, 3, list.Total)
	assert.Nil(t, list.Items[0].Price)
	assert.Nil(t, list.Items[0].Quantity)
	assert.Equal(t, entity.NoCategoryKey, list.Items[0].CategoryName)
	assert.Equal(t, "50", list.Items[2].Value.String())
}

func TestListProducts_FiltroTextoYCategoria(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	byText := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products?q=AM", ""))
	assert.Equal(t, []string{"Frame", "Hammer"}, productNames(byText))

	byName := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products?category=Office", ""))
	assert.Equal(t, []string{"Stapler"}, productNames(byName))

	byID := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products?category=Office&category_id=cat-tools", ""))
	assert.Equal(t, []string{"Hammer"}, productNames(byID))

	all := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products?category=all", ""))
	assert.Len(t, all.Items, 3)
}

func TestListProducts_AlmacenCaidoDevuelveVistaVacia(t *testing.T) {
	app, _ := buildTestApp(&flakyStore{Store: seededStore(), failList: true})

	resp := doJSON(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)

	assert.True(t, list.Degraded)
	assert.Contains(t, list.Message, "connection refused")
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
}

func TestGetProduct_NoExiste(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodGet, "/api/products/nope", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste de cantidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustQuantity_AplicaDeltaYPideRecarga(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPatch, "/api/products/p-stapler/quantity", `{"delta": -3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.MutationResponse](t, resp)
	assert.True(t, out.Refresh)

	got, _ := st.Get("p-stapler")
	assert.Equal(t, int64(1), got.Quantity.OrZero())

	// la siguiente lectura ya ve el valor nuevo
	p := decode[dto.ProductResponse](t, doJSON(t, app, http.MethodGet, "/api/products/p-stapler", ""))
	require.NotNil(t, p.Quantity)
	assert.Equal(t, int64(1), *p.Quantity)
}

func TestAdjustQuantity_NegativoRechazadoSinEscribir(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPatch, "/api/products/p-stapler/quantity", `{"delta": -5}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, st.Writes())
	got, _ := st.Get("p-stapler")
	assert.Equal(t, int64(4), got.Quantity.OrZero())
}

func TestAdjustQuantity_ProductoInexistente(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodPatch, "/api/products/ghost/quantity", `{"delta": 1}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdjustQuantity_CuerpoInvalido(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodPatch, "/api/products/p-stapler/quantity", `{"delta": "mucho"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAdjustQuantity_FalloDelAlmacen(t *testing.T) {
	app, _ := buildTestApp(&flakyStore{Store: seededStore(), failWrites: true})

	resp := doJSON(t, app, http.MethodPatch, "/api/products/p-stapler/quantity", `{"delta": 1}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "STORE_ERROR", body.Code)
	assert.Contains(t, body.Message, "connection refused")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición, alta y baja
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_PrecioNegativo(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPut, "/api/products/p-hammer", `{"name": "Hammer", "price": "-1"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PRICE", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, st.Writes())
}

func TestUpdateProduct_NombreEnBlanco(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodPut, "/api/products/p-hammer", `{"name": "   ", "price": 1}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_NAME", decode[dto.ErrorResponse](t, resp).Code)
}

func TestUpdateProduct_MasDeDosDecimales(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodPut, "/api/products/p-hammer", `{"name": "Hammer", "price": "1.999"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "price")
}

func TestUpdateProduct_CambiaNombreYPrecio(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPut, "/api/products/p-hammer", `{"name": " Sledgehammer ", "price": 45.5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, _ := st.Get("p-hammer")
	assert.Equal(t, "Sledgehammer", got.Name)
	assert.Equal(t, "45.5", got.Price.Decimal.String())
	assert.Equal(t, int64(10), got.Quantity.OrZero())
	assert.Equal(t, "cat-tools", got.CategoryID)
}

func TestCreateProduct_ValoresPorDefecto(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPost, "/api/products", `{"name": "Ruler", "category_id": "cat-office"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.MutationResponse](t, resp)
	assert.True(t, out.Refresh)
	require.NotEmpty(t, out.ID)

	got, ok := st.Get(out.ID)
	require.True(t, ok)
	assert.True(t, got.Price.Valid)
	assert.True(t, got.Price.Decimal.IsZero())
	assert.Equal(t, entity.NewQuantity(0), got.Quantity)
}

func TestCreateProduct_CategoriaDesconocida(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPost, "/api/products", `{"name": "Ruler", "category_id": "cat-x"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_CATEGORY", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, st.Writes())
}

func TestCreateProduct_NombreDemasiadoLargo(t *testing.T) {
	app, _ := buildTestApp(seededStore())
	body, _ := json.Marshal(map[string]string{"name": strings.Repeat("x", 201), "category_id": "cat-office"})

	resp := doJSON(t, app, http.MethodPost, "/api/products", string(body))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateProduct_PrecioNegativoConAlmacenCaido(t *testing.T) {
	app, _ := buildTestApp(&flakyStore{Store: seededStore(), failList: true})

	resp := doJSON(t, app, http.MethodPost, "/api/products", `{"name": "Pen", "price": "-1", "category_id": "cat-office"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PRICE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestUpdateProduct_SinPrecioSeRechaza(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPut, "/api/products/p-hammer", `{"name": "Hammer2"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "price")
	got, _ := st.Get("p-hammer")
	assert.Equal(t, "30", got.Price.Decimal.String())
	assert.Equal(t, "Hammer", got.Name)
	assert.Zero(t, st.Writes())
}

func TestAdjustQuantity_DeltaFueraDeRango(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodPatch, "/api/products/p-hammer/quantity", `{"delta": 9223372036854775807}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, st.Writes())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambios hechos fuera de la API
// ──────────────────────────────────────────────────────────────────────────────

func TestCambiosExternos_VisiblesEnLaSiguientePeticion(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)
	ctx := context.Background()

	list := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products", ""))
	require.Len(t, list.Items, 3)

	qty := int64(100)
	require.NoError(t, st.UpdateProduct(ctx, "p-hammer", entity.ProductFields{Quantity: &qty}))

	p := decode[dto.ProductResponse](t, doJSON(t, app, http.MethodGet, "/api/products/p-hammer", ""))
	require.NotNil(t, p.Quantity)
	assert.Equal(t, int64(100), *p.Quantity)

	resp := doJSON(t, app, http.MethodPatch, "/api/products/p-hammer/quantity", `{"delta": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, _ := st.Get("p-hammer")
	assert.Equal(t, int64(101), got.Quantity.OrZero())

	catID, err := st.InsertCategory(ctx, &entity.Category{ID: "cat-garden", Name: "Garden"})
	require.NoError(t, err)
	resp = doJSON(t, app, http.MethodPost, "/api/products", `{"name": "Rake", "category_id": "`+catID+`"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	st := seededStore()
	app, _ := buildTestApp(st)

	resp := doJSON(t, app, http.MethodDelete, "/api/products/p-frame", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.MutationResponse](t, resp).Refresh)

	_, ok := st.Get("p-frame")
	assert.False(t, ok)
	list := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products", ""))
	assert.Equal(t, []string{"Hammer", "Stapler"}, productNames(list))
}

func TestDeleteProduct_FalloDelAlmacen(t *testing.T) {
	app, _ := buildTestApp(&flakyStore{Store: seededStore(), failWrites: true})

	resp := doJSON(t, app, http.MethodDelete, "/api/products/p-frame", "")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías, dashboard, reportes y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_CrearYListar(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodPost, "/api/categories", `{"name": "Office", "description": "duplicado permitido"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	empty := doJSON(t, app, http.MethodPost, "/api/categories", `{"name": ""}`)
	assert.Equal(t, http.StatusBadRequest, empty.StatusCode)
	assert.Equal(t, "INVALID_NAME", decode[dto.ErrorResponse](t, empty).Code)

	list := decode[[]dto.CategoryResponse](t, doJSON(t, app, http.MethodGet, "/api/categories", ""))
	require.Len(t, list, 3)
	assert.Equal(t, "Office", list[0].Name)
	assert.Equal(t, "Office", list[1].Name)
	assert.Equal(t, "Tools", list[2].Name)
}

func TestDashboardSummary(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardSummaryDTO](t, resp)

	assert.False(t, out.Degraded)
	assert.Equal(t, 3, out.ItemCount)
	assert.Equal(t, int64(14), out.TotalUnits)
	assert.Equal(t, "350", out.TotalValue.String())
	require.Len(t, out.LowStock, 2)
	assert.Equal(t, "Frame", out.LowStock[0].Name)
	assert.Equal(t, "Stapler", out.LowStock[1].Name)
	require.NotEmpty(t, out.TopValue)
	assert.Equal(t, "Hammer", out.TopValue[0].Name)
}

func TestDashboardSummary_Degradado(t *testing.T) {
	app, _ := buildTestApp(&flakyStore{Store: seededStore(), failList: true})

	out := decode[dto.DashboardSummaryDTO](t, doJSON(t, app, http.MethodGet, "/api/dashboard/summary", ""))

	assert.True(t, out.Degraded)
	assert.Zero(t, out.ItemCount)
}

func TestStockReport_CSV(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodGet, "/api/reports/stock.csv?category=Office", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Equal(t, "id,name,category,price,quantity,value\np-stapler,Stapler,Office,12.50,4,50.00\n", string(body))
}

func TestStockReport_PDF(t *testing.T) {
	app, _ := buildTestApp(seededStore())

	resp := doJSON(t, app, http.MethodGet, "/api/reports/stock.pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestStockReport_AlmacenCaido(t *testing.T) {
	app, _ := buildTestApp(&flakyStore{Store: seededStore(), failList: true})

	resp := doJSON(t, app, http.MethodGet, "/api/reports/stock.csv", "")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestMetrics_CuentaPeticionesYOperaciones(t *testing.T) {
	app, _ := buildTestApp(seededStore())
	doJSON(t, app, http.MethodPatch, "/api/products/p-stapler/quantity", `{"delta": -9}`)

	resp := doJSON(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `test_http_requests_total{method="PATCH",path="/api/products/:id/quantity",status="400"} 1`)
	assert.Contains(t, text, `test_ledger_operations_total{operation="adjust_quantity",outcome="invalid"} 1`)
	assert.Contains(t, text, "test_inventory_units 14")
}
