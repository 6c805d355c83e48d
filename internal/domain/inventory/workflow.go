package inventory

import (
	"fmt"

	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// Delta ajuste de stock que el llamador debe aplicar una sola vez.
type Delta struct {
	ProductID   string
	ProductName string
	Quantity    int // positivo suma, negativo descuenta
}

// Transition resultado de una transición de estado. Es puro: no toca el stock.
// Noop indica que la transición ya estaba aplicada; en ese caso Deltas está vacío.
type Transition struct {
	From   entity.Status
	To     entity.Status
	Marker string
	Deltas []Delta
	Noop   bool
}

// Workflow máquina de estados de devoluciones o pedidos.
type Workflow struct {
	name     string
	edges    map[entity.Status][]entity.Status
	effects  map[entity.Status]int // signo aplicado a las líneas al llegar a ese estado
	onCreate int
}

// ReturnWorkflow devoluciones: el stock se descuenta al registrarlas y se repone si el proveedor las rechaza.
var ReturnWorkflow = Workflow{
	name: "devolución",
	edges: map[entity.Status][]entity.Status{
		entity.StatusPending: {entity.StatusProcessed, entity.StatusRejected},
	},
	effects:  map[entity.Status]int{entity.StatusRejected: +1},
	onCreate: -1,
}

// OrderWorkflow pedidos: solo la recepción suma stock.
var OrderWorkflow = Workflow{
	name: "pedido",
	edges: map[entity.Status][]entity.Status{
		entity.StatusPending: {entity.StatusSent, entity.StatusReceived, entity.StatusCancelled},
		entity.StatusSent:    {entity.StatusReceived, entity.StatusCancelled},
	},
	effects: map[entity.Status]int{entity.StatusReceived: +1},
}

// Marker marca de transición guardada en Document.AppliedTransition.
func Marker(from, to entity.Status) string {
	return string(from) + "->" + string(to)
}

// Known indica si el estado pertenece a este flujo.
func (w Workflow) Known(s entity.Status) bool {
	if _, ok := w.edges[s]; ok {
		return true
	}
	for _, targets := range w.edges {
		for _, t := range targets {
			if t == s {
				return true
			}
		}
	}
	return false
}

// Terminal indica que el estado no admite más transiciones.
func (w Workflow) Terminal(s entity.Status) bool {
	return w.Known(s) && len(w.edges[s]) == 0
}

// CanTransition indica si from → to es un arco válido.
func (w Workflow) CanTransition(from, to entity.Status) bool {
	for _, t := range w.edges[from] {
		if t == to {
			return true
		}
	}
	return false
}

// OnCreate ajustes a aplicar al registrar el documento.
func (w Workflow) OnCreate(items []entity.LineItem) []Delta {
	return deltas(items, w.onCreate)
}

// Transition calcula el paso de doc al estado to.
// Pedir el estado actual, o una transición cuya marca ya está aplicada, no es error: devuelve Noop.
func (w Workflow) Transition(doc entity.Document, to entity.Status) (Transition, error) {
	if !w.Known(to) {
		return Transition{}, fmt.Errorf("%s: estado %q desconocido: %w", w.name, to, domain.ErrInvalidInput)
	}
	from := doc.Status
	if from == "" {
		from = entity.StatusPending
	}
	t := Transition{From: from, To: to, Marker: Marker(from, to)}
	if from == to || doc.AppliedTransition == t.Marker {
		t.Noop = true
		t.Deltas = []Delta{}
		return t, nil
	}
	if !w.CanTransition(from, to) {
		return Transition{}, fmt.Errorf("%s %s: %s → %s: %w", w.name, doc.ID, from, to, domain.ErrInvalidTransition)
	}
	t.Deltas = deltas(doc.Items, w.effects[to])
	return t, nil
}

func deltas(items []entity.LineItem, sign int) []Delta {
	out := make([]Delta, 0, len(items))
	if sign == 0 {
		return out
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		out = append(out, Delta{ProductID: it.ProductID, ProductName: it.ProductName, Quantity: sign * it.Quantity})
	}
	return out
}
