package entity

import (
	"github.com/shopspring/decimal"
)

// NoCategoryKey clave y etiqueta usadas cuando un producto no tiene categoría.
const NoCategoryKey = "none"

// Product representa un producto del inventario.
// Price y Quantity pueden venir ausentes del almacén: se conserva la ausencia
// (Valid=false) para mostrarla, pero toda aritmética usa PriceOrZero / Quantity.OrZero.
type Product struct {
	ID           string
	Name         string
	Price        decimal.NullDecimal // precio de venta, >= 0
	Quantity     Quantity            // unidades en stock, >= 0
	CategoryID   string              // vacío = sin categoría
	CategoryName string              // resuelto por join; NoCategoryKey si no tiene
}

// PriceOrZero devuelve el precio almacenado o 0 si está ausente.
func (p Product) PriceOrZero() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}

// Value devuelve precio * cantidad con ausentes tratados como 0.
func (p Product) Value() decimal.Decimal {
	return p.PriceOrZero().Mul(decimal.NewFromInt(p.Quantity.OrZero()))
}

// CategoryKey devuelve la clave de agrupación por categoría (id, o NoCategoryKey).
func (p Product) CategoryKey() string {
	if p.CategoryID == "" {
		return NoCategoryKey
	}
	return p.CategoryID
}

// ProductFields campos a escribir en una actualización parcial; nil = no tocar.
type ProductFields struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int64
}
