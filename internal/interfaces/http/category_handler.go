package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// CategoryHandler maneja las peticiones HTTP de categorías.
type CategoryHandler struct {
	ledger   *appinventory.Ledger
	validate *validator.Validate
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(ledger *appinventory.Ledger, validate *validator.Validate) *CategoryHandler {
	return &CategoryHandler{ledger: ledger, validate: validate}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.ledger.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewCategoryList(categories))
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.ledger.CreateCategory(c.UserContext(), in.Name, in.Description)
	if err != nil {
		return writeError(c, err)
	}
	return mutationOK(c, fiber.StatusCreated, res.ID, res.Refresh)
}
