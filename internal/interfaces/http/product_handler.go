package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// ProductHandler maneja las peticiones HTTP de productos sobre el ledger.
type ProductHandler struct {
	ledger   *appinventory.Ledger
	validate *validator.Validate
}

// NewProductHandler construye el handler.
func NewProductHandler(ledger *appinventory.Ledger, validate *validator.Validate) *ProductHandler {
	return &ProductHandler{ledger: ledger, validate: validate}
}

// viewQuery lee los filtros de la vista: q, category (nombre o "all") y category_id.
func viewQuery(c *fiber.Ctx) inventory.Query {
	return inventory.Query{
		Text:         c.Query("q"),
		CategoryName: c.Query("category", inventory.AllCategories),
		CategoryID:   c.Query("category_id"),
	}
}

// List godoc
// @Summary      Listar productos (vista filtrada del snapshot)
// @Tags         products
// @Produce      json
// @Param        q            query  string  false  "Texto contenido en el nombre"
// @Param        category     query  string  false  "Nombre de categoría o all"
// @Param        category_id  query  string  false  "ID de categoría (prioridad sobre category)"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := viewQuery(c)
	h.ledger.SetView(q)

	snap, err := h.ledger.Current(c.UserContext())
	if err != nil {
		if errors.Is(err, domain.ErrStore) {
			out := dto.NewProductListResponse(nil)
			out.Degraded = true
			out.Message = err.Error()
			return c.JSON(out)
		}
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductListResponse(h.ledger.Filter(snap, q)))
}

// Get godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.ledger.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.ledger.CreateProduct(c.UserContext(), appinventory.CreateProductInput{
		Name:       in.Name,
		Price:      in.Price,
		Quantity:   in.Quantity,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return mutationOK(c, fiber.StatusCreated, res.ID, res.Refresh)
}

// Update godoc
// @Summary      Editar nombre y precio
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Nombre y precio"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	product, err := h.ledger.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.ledger.EditProduct(c.UserContext(), product, in.Name, *in.Price)
	if err != nil {
		return writeError(c, err)
	}
	return mutationOK(c, fiber.StatusOK, res.ID, res.Refresh)
}

// AdjustQuantity godoc
// @Summary      Ajustar cantidad (delta relativo)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustQuantityRequest  true  "Delta (+/-)"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/quantity [patch]
func (h *ProductHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	product, err := h.ledger.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.ledger.AdjustQuantity(c.UserContext(), product, in.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return mutationOK(c, fiber.StatusOK, res.ID, res.Refresh)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	res, err := h.ledger.DeleteProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return mutationOK(c, fiber.StatusOK, res.ID, res.Refresh)
}
