package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
)

func day(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func purchase(area, name string, qty int, price int64, date time.Time) entity.Purchase {
	return entity.Purchase{
		ID:          name + "-" + area,
		Date:        date,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   decimal.NewFromInt(price),
		Area:        area,
	}
}

func TestFilter_RangoDeFechasInclusivo(t *testing.T) {
	records := []entity.Purchase{
		purchase("Box 1", "guantes", 1, 100, day(2024, 1, 31, 23, 59, 59)),
		purchase("Box 1", "mascarillas", 1, 100, day(2024, 2, 1, 0, 0, 0)),
		purchase("Box 1", "algodón", 1, 100, day(2024, 1, 1, 0, 0, 0)),
		purchase("Box 1", "eyectores", 1, 100, day(2023, 12, 31, 23, 59, 59)),
	}
	c := inventory.Criteria{
		Since: ptr(day(2024, 1, 1, 12, 30, 0)),
		Until: ptr(day(2024, 1, 31, 8, 0, 0)),
	}

	got := inventory.Filter(records, c, day(2024, 3, 1, 0, 0, 0))

	require.Len(t, got, 2)
	assert.Equal(t, "guantes", got[0].ProductName, "el 31 a las 23:59:59 debe incluirse")
	assert.Equal(t, "algodón", got[1].ProductName, "since se lleva al inicio del día")
}

func TestFilter_ColeccionVaciaDevuelveVacio(t *testing.T) {
	got := inventory.Filter([]entity.Product{}, inventory.Criteria{}, time.Now())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_ClausulasVaciasAceptanTodo(t *testing.T) {
	products := []entity.Product{{Name: "Composite A2"}, {Name: "Guantes"}}
	c := inventory.Criteria{
		Text:   []inventory.TextClause{{Field: entity.FieldName, Contains: ""}},
		Equals: []inventory.EqualsClause{{Field: entity.FieldArea, Value: ""}},
		Period: inventory.PeriodAllTime,
	}
	assert.Len(t, inventory.Filter(products, c, time.Now()), 2)
}

func TestFilter_TextoSinMayusculasNiTildes(t *testing.T) {
	products := []entity.Product{
		{Name: "Lidocaína 2% con epinefrina"},
		{Name: "Guantes de nitrilo"},
		{Name: "LIDOCAINA tópica"},
	}
	c := inventory.Criteria{Text: []inventory.TextClause{{Field: entity.FieldName, Contains: "lidocaina"}}}

	got := inventory.Filter(products, c, time.Now())

	require.Len(t, got, 2)
	assert.Equal(t, "Lidocaína 2% con epinefrina", got[0].Name)
	assert.Equal(t, "LIDOCAINA tópica", got[1].Name)
}

func TestFilter_CombinaClausulasConAND(t *testing.T) {
	products := []entity.Product{
		{Name: "Resina A1", Area: "Box 1", Quantity: 3, Saved: true},
		{Name: "Resina A2", Area: "Box 2", Quantity: 3, Saved: true},
		{Name: "Resina A3", Area: "Box 1", Quantity: 10, Saved: true},
		{Name: "Resina B1", Area: "Box 1", Quantity: 3, Saved: false},
	}
	c := inventory.Criteria{
		Text:    []inventory.TextClause{{Field: entity.FieldName, Contains: "resina"}},
		Equals:  []inventory.EqualsClause{{Field: entity.FieldArea, Value: "Box 1"}},
		Numeric: []inventory.NumericClause{{Field: entity.FieldQuantity, Op: inventory.OpLess, Value: decimal.NewFromInt(5)}},
		Flags:   []inventory.FlagClause{{Field: entity.FieldSaved, Value: true}},
	}

	got := inventory.Filter(products, c, time.Now())

	require.Len(t, got, 1)
	assert.Equal(t, "Resina A1", got[0].Name)
}

func TestFilter_OperadoresNumericos(t *testing.T) {
	products := []entity.Product{{Name: "a", Quantity: 4}, {Name: "b", Quantity: 5}, {Name: "c", Quantity: 6}}
	five := decimal.NewFromInt(5)

	cases := []struct {
		op   inventory.Op
		want []string
	}{
		{inventory.OpGreater, []string{"c"}},
		{inventory.OpLess, []string{"a"}},
		{inventory.OpEqual, []string{"b"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.op), func(t *testing.T) {
			c := inventory.Criteria{Numeric: []inventory.NumericClause{{Field: entity.FieldQuantity, Op: tc.op, Value: five}}}
			var names []string
			for _, p := range inventory.Filter(products, c, time.Now()) {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestFilter_RegistroSinFechaNoCumpleClausulaDeFecha(t *testing.T) {
	products := []entity.Product{
		{Name: "sin fecha"},
		{Name: "con fecha", ReceivedDate: ptr(day(2024, 5, 2, 10, 0, 0))},
	}
	c := inventory.Criteria{Since: ptr(day(2024, 5, 1, 0, 0, 0))}

	got := inventory.Filter(products, c, day(2024, 5, 3, 0, 0, 0))

	require.Len(t, got, 1)
	assert.Equal(t, "con fecha", got[0].Name)
}

func TestFilter_CampoDesconocidoHacePanic(t *testing.T) {
	products := []entity.Product{{Name: "x"}}
	c := inventory.Criteria{Text: []inventory.TextClause{{Field: "color", Contains: "rojo"}}}
	assert.Panics(t, func() { inventory.Filter(products, c, time.Now()) })

	bad := inventory.Criteria{Numeric: []inventory.NumericClause{{Field: entity.FieldQuantity, Op: ">=", Value: decimal.Zero}}}
	assert.Panics(t, func() { inventory.Filter(products, bad, time.Now()) })
}

func TestFilter_CampoDesconocidoEnClausulaVaciaHacePanic(t *testing.T) {
	products := []entity.Product{{Name: "x"}}
	text := inventory.Criteria{Text: []inventory.TextClause{{Field: "color", Contains: ""}}}
	assert.Panics(t, func() { inventory.Filter(products, text, time.Now()) })

	equals := inventory.Criteria{Equals: []inventory.EqualsClause{{Field: "color", Value: ""}}}
	assert.Panics(t, func() { inventory.Filter(products, equals, time.Now()) })
}
