package entity

import "strconv"

// Quantity cantidad en stock que puede estar ausente en el almacén.
type Quantity struct {
	Int   int64
	Valid bool
}

// NewQuantity construye una cantidad conocida.
func NewQuantity(n int64) Quantity {
	return Quantity{Int: n, Valid: true}
}

// OrZero devuelve la cantidad o 0 si es desconocida.
func (q Quantity) OrZero() int64 {
	if !q.Valid {
		return 0
	}
	return q.Int
}

// String "?" si es desconocida.
func (q Quantity) String() string {
	if !q.Valid {
		return "?"
	}
	return strconv.FormatInt(q.Int, 10)
}
