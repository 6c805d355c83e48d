package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record es lo que el motor de filtros necesita de cualquier colección.
// Los accesores deben hacer panic ante un nombre de campo desconocido.
type Record interface {
	RecordDate() (time.Time, bool)
	TextField(name string) string
	NumberField(name string) decimal.Decimal
	FlagField(name string) bool
}

// Op operador de comparación numérica.
type Op string

const (
	OpGreater Op = ">"
	OpLess    Op = "<"
	OpEqual   Op = "="
)

// TextClause subcadena sin distinción de mayúsculas ni tildes.
type TextClause struct {
	Field    string
	Contains string
}

// EqualsClause igualdad exacta sobre un campo tipo enumeración (área, categoría, estado).
type EqualsClause struct {
	Field string
	Value string
}

// NumericClause comparación numérica.
type NumericClause struct {
	Field string
	Op    Op
	Value decimal.Decimal
}

// FlagClause coincidencia de un campo booleano.
type FlagClause struct {
	Field string
	Value bool
}

// Criteria conjunto de cláusulas combinadas con AND. Cada cláusula es opcional:
// una cláusula vacía (texto o valor vacío, fecha nil, período all-time) acepta todo.
type Criteria struct {
	Text    []TextClause
	Equals  []EqualsClause
	Numeric []NumericClause
	Flags   []FlagClause
	Since   *time.Time // se lleva a 00:00:00.000
	Until   *time.Time // se lleva a 23:59:59.999
	Period  Period
}

// HasDateClause indica si el criterio restringe por fecha.
func (c Criteria) HasDateClause() bool {
	return c.Since != nil || c.Until != nil || (c.Period != "" && c.Period != PeriodAllTime)
}

// Filter devuelve los registros que cumplen todas las cláusulas, conservando el orden de entrada.
// Un registro sin fecha nunca cumple una cláusula de fecha.
func Filter[T Record](records []T, c Criteria, now time.Time) []T {
	out := make([]T, 0, len(records))
	var since, until time.Time
	if c.Since != nil {
		since = StartOfDay(*c.Since)
	}
	if c.Until != nil {
		until = EndOfDay(*c.Until)
	}
	for _, r := range records {
		if matches(r, c, since, until, now) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Record, c Criteria, since, until, now time.Time) bool {
	// El campo se lee aunque la cláusula esté vacía: un nombre desconocido entra en pánico igual.
	for _, tc := range c.Text {
		v := r.TextField(tc.Field)
		if tc.Contains != "" && !containsFolded(v, tc.Contains) {
			return false
		}
	}
	for _, ec := range c.Equals {
		v := r.TextField(ec.Field)
		if ec.Value != "" && v != ec.Value {
			return false
		}
	}
	for _, nc := range c.Numeric {
		if !compare(r.NumberField(nc.Field), nc.Op, nc.Value) {
			return false
		}
	}
	for _, fc := range c.Flags {
		if r.FlagField(fc.Field) != fc.Value {
			return false
		}
	}
	if c.HasDateClause() {
		d, ok := r.RecordDate()
		if !ok {
			return false
		}
		if c.Since != nil && d.Before(since) {
			return false
		}
		if c.Until != nil && d.After(until) {
			return false
		}
		if !c.Period.Match(d, now) {
			return false
		}
	}
	return true
}

func compare(v decimal.Decimal, op Op, ref decimal.Decimal) bool {
	switch op {
	case OpGreater:
		return v.GreaterThan(ref)
	case OpLess:
		return v.LessThan(ref)
	case OpEqual:
		return v.Equal(ref)
	}
	panic(fmt.Sprintf("inventory: operador %q no soportado", string(op)))
}
