package inventory

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// NextQuantity calcula la cantidad resultante de aplicar delta.
// Base = cantidad actual o 0 si es desconocida. Un resultado negativo se
// rechaza completo (sin recorte a 0); uno que no cabe en int64, con ErrQuantityRange.
func NextQuantity(current entity.Quantity, delta int64) (int64, error) {
	base := current.OrZero()
	if (delta > 0 && base > math.MaxInt64-delta) || (delta < 0 && base < math.MinInt64-delta) {
		return 0, domain.ErrQuantityRange
	}
	next := base + delta
	if next < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return next, nil
}

// ValidateName exige un nombre no vacío (espacios no cuentan).
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidName
	}
	return nil
}

// ValidatePrice exige precio >= 0.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.ErrInvalidPrice
	}
	return nil
}
