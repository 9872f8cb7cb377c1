package inventory_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestNextQuantity(t *testing.T) {
	cases := []struct {
		name    string
		current entity.Quantity
		delta   int64
		want    int64
		err     error
	}{
		{"suma", entity.NewQuantity(2), 3, 5, nil},
		{"resta hasta cero", entity.NewQuantity(2), -2, 0, nil},
		{"negativo rechazado", entity.NewQuantity(2), -5, 0, domain.ErrInvalidQuantity},
		{"desconocida es base cero", entity.Quantity{}, 4, 4, nil},
		{"desconocida no baja de cero", entity.Quantity{}, -1, 0, domain.ErrInvalidQuantity},
		{"delta cero", entity.NewQuantity(7), 0, 7, nil},
		{"desborde positivo", entity.NewQuantity(1), math.MaxInt64, 0, domain.ErrQuantityRange},
		{"justo en el limite", entity.NewQuantity(0), math.MaxInt64, math.MaxInt64, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.NextQuantity(tc.current, tc.delta)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateNameYPrice(t *testing.T) {
	assert.ErrorIs(t, inventory.ValidateName(""), domain.ErrInvalidName)
	assert.ErrorIs(t, inventory.ValidateName("   "), domain.ErrInvalidName)
	assert.NoError(t, inventory.ValidateName("Pen"))

	assert.ErrorIs(t, inventory.ValidatePrice(decimal.NewFromFloat(-3.0)), domain.ErrInvalidPrice)
	assert.NoError(t, inventory.ValidatePrice(decimal.Zero))
}

func TestNormalize_ResuelveCategoria(t *testing.T) {
	products := []*entity.Product{
		{ID: "1", Name: "A", CategoryID: "c1"},                         // nombre por lookup
		{ID: "2", Name: "B", CategoryID: "c1", CategoryName: "Joined"}, // viene del join
		{ID: "3", Name: "C"},                                           // sin categoría
		{ID: "4", Name: "D", CategoryID: "borrada"},                    // referencia rota
		nil,
	}
	categories := []*entity.Category{{ID: "c1", Name: "Biuro"}}

	snap := inventory.Normalize(products, categories)

	require.Len(t, snap.Products, 4)
	assert.Equal(t, "Biuro", snap.Products[0].CategoryName)
	assert.Equal(t, "Joined", snap.Products[1].CategoryName)
	assert.Equal(t, entity.NoCategoryKey, snap.Products[2].CategoryName)
	assert.Equal(t, entity.NoCategoryKey, snap.Products[3].CategoryName)
	assert.Empty(t, snap.Products[3].CategoryID, "la referencia rota se trata como sin categoría")
	assert.Equal(t, entity.NoCategoryKey, snap.Products[3].CategoryKey())
	assert.True(t, snap.HasCategory("c1"))
	assert.False(t, snap.HasCategory(""))
	assert.False(t, snap.HasCategory("c9"))
}

func TestNormalize_CategoriaBorradaAgrupaComoSinCategoria(t *testing.T) {
	products := []*entity.Product{
		{ID: "1", Name: "A", Price: decimal.NewNullDecimal(decimal.NewFromInt(2)), Quantity: entity.NewQuantity(1)},
		{ID: "2", Name: "B", Price: decimal.NewNullDecimal(decimal.NewFromInt(3)), Quantity: entity.NewQuantity(1), CategoryID: "borrada"},
	}

	snap := inventory.Normalize(products, nil)
	agg := inventory.Aggregate(snap.Products)

	require.Len(t, agg.ByCategoryValue, 1)
	assert.True(t, agg.ByCategoryValue[entity.NoCategoryKey].Equal(decimal.NewFromInt(5)))
	assert.Len(t, inventory.Filter(snap.Products, inventory.Query{CategoryID: entity.NoCategoryKey}), 2)
}
