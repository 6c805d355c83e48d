package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Measurable expone cantidad y precio unitario. El valor de un registro siempre se
// recalcula como cantidad * precio; el total almacenado en la fuente no se usa.
type Measurable interface {
	Measure() (quantity int, unitPrice decimal.Decimal)
}

// Value valor recalculado de un registro.
func Value(m Measurable) decimal.Decimal {
	qty, price := m.Measure()
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// Group totales de una clave de agrupación.
type Group struct {
	Key         string
	Count       int
	QuantitySum int
	ValueSum    decimal.Decimal
}

// GroupShare grupo con su porcentaje sobre el total (2 decimales).
type GroupShare struct {
	Group
	Percentage decimal.Decimal
}

// Aggregation resultado de GroupBy. Los grupos se guardan en orden de aparición.
type Aggregation struct {
	groups   []Group
	index    map[string]int
	total    decimal.Decimal
	quantity int
}

// GroupBy agrupa los registros por la clave que devuelve key.
func GroupBy[T Measurable](records []T, key func(T) string) *Aggregation {
	a := &Aggregation{index: make(map[string]int), total: decimal.Zero}
	for _, r := range records {
		k := key(r)
		qty, _ := r.Measure()
		v := Value(r)

		i, ok := a.index[k]
		if !ok {
			i = len(a.groups)
			a.index[k] = i
			a.groups = append(a.groups, Group{Key: k, ValueSum: decimal.Zero})
		}
		g := &a.groups[i]
		g.Count++
		g.QuantitySum += qty
		g.ValueSum = g.ValueSum.Add(v)

		a.total = a.total.Add(v)
		a.quantity += qty
	}
	return a
}

// Sum valor total de una colección sin agrupar.
func Sum[T Measurable](records []T) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(Value(r))
	}
	return total
}

// Len cantidad de grupos.
func (a *Aggregation) Len() int { return len(a.groups) }

// Total suma de ValueSum de todos los grupos.
func (a *Aggregation) Total() decimal.Decimal { return a.total }

// TotalQuantity suma de QuantitySum de todos los grupos.
func (a *Aggregation) TotalQuantity() int { return a.quantity }

// Lookup devuelve el grupo de una clave.
func (a *Aggregation) Lookup(key string) (Group, bool) {
	i, ok := a.index[key]
	if !ok {
		return Group{}, false
	}
	return a.groups[i], true
}

// Groups copia de los grupos en orden de aparición.
func (a *Aggregation) Groups() []Group {
	out := make([]Group, len(a.groups))
	copy(out, a.groups)
	return out
}

// Sorted grupos por ValueSum descendente. El orden es estable: ante empate
// se conserva el orden en que apareció cada clave.
func (a *Aggregation) Sorted() []Group {
	out := a.Groups()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ValueSum.GreaterThan(out[j].ValueSum)
	})
	return out
}

// Top primeros n grupos de Sorted; n <= 0 devuelve todos.
func (a *Aggregation) Top(n int) []Group {
	sorted := a.Sorted()
	if n > 0 && n < len(sorted) {
		return sorted[:n]
	}
	return sorted
}

// Percentage participación de value sobre el total; 0 si el total es cero.
func (a *Aggregation) Percentage(value decimal.Decimal) decimal.Decimal {
	if a.total.IsZero() {
		return decimal.Zero
	}
	return value.Div(a.total).Mul(hundred).Round(2)
}

// Shares agrega el porcentaje sobre el total a cada grupo recibido.
func (a *Aggregation) Shares(groups []Group) []GroupShare {
	out := make([]GroupShare, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupShare{Group: g, Percentage: a.Percentage(g.ValueSum)})
	}
	return out
}
