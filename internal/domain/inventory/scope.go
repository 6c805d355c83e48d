package inventory

import (
	"time"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// Scope restricción de acceso inyectada por quien llama: un asistente solo ve su área.
// Se aplica antes que cualquier otro filtro. RestrictArea vacío significa sin restricción.
type Scope struct {
	RestrictArea string
}

// Restricted indica si hay un área impuesta.
func (s Scope) Restricted() bool { return s.RestrictArea != "" }

// Allows indica si el área es visible y modificable dentro del alcance.
func (s Scope) Allows(area string) bool {
	return !s.Restricted() || s.RestrictArea == area
}

// Criteria cláusula de área equivalente al alcance.
func (s Scope) Criteria() Criteria {
	if !s.Restricted() {
		return Criteria{}
	}
	return Criteria{Equals: []EqualsClause{{Field: entity.FieldArea, Value: s.RestrictArea}}}
}

// Scoped aplica el alcance a una colección.
func Scoped[T Record](records []T, s Scope) []T {
	return Filter(records, s.Criteria(), time.Time{})
}
