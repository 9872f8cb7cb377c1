package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// writeError traduce errores del dominio/ledger a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrQuantityRange):
		status, code = fiber.StatusBadRequest, "QUANTITY_OUT_OF_RANGE"
	case errors.Is(err, domain.ErrInvalidName):
		status, code = fiber.StatusBadRequest, "INVALID_NAME"
	case errors.Is(err, domain.ErrInvalidPrice):
		status, code = fiber.StatusBadRequest, "INVALID_PRICE"
	case errors.Is(err, domain.ErrUnknownCategory):
		status, code = fiber.StatusUnprocessableEntity, "UNKNOWN_CATEGORY"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrStore):
		status, code = fiber.StatusBadGateway, "STORE_ERROR"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
}

func mutationOK(c *fiber.Ctx, status int, id string, refresh bool) error {
	return c.Status(status).JSON(dto.MutationResponse{Refresh: refresh, ID: id})
}
