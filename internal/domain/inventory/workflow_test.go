package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
)

func orderDoc(status entity.Status) entity.Document {
	return entity.Document{
		ID:     "ped-1",
		Status: status,
		Items: []entity.LineItem{
			{ProductID: "p1", ProductName: "Guantes", Quantity: 10, UnitPrice: decimal.NewFromInt(80)},
			{ProductID: "p2", ProductName: "Resina", Quantity: 2, UnitPrice: decimal.NewFromInt(9000)},
		},
	}
}

func TestOrderWorkflow_RecepcionSumaStock(t *testing.T) {
	tr, err := inventory.OrderWorkflow.Transition(orderDoc(entity.StatusPending), entity.StatusReceived)
	require.NoError(t, err)

	assert.False(t, tr.Noop)
	assert.Equal(t, "pending->received", tr.Marker)
	assert.Equal(t, []inventory.Delta{
		{ProductID: "p1", ProductName: "Guantes", Quantity: 10},
		{ProductID: "p2", ProductName: "Resina", Quantity: 2},
	}, tr.Deltas)
}

// Marcar un pedido como recibido dos veces no debe volver a sumar stock.
func TestOrderWorkflow_RecepcionDobleEsNoop(t *testing.T) {
	doc := orderDoc(entity.StatusPending)
	first, err := inventory.OrderWorkflow.Transition(doc, entity.StatusReceived)
	require.NoError(t, err)

	doc.Status = first.To
	doc.AppliedTransition = first.Marker

	second, err := inventory.OrderWorkflow.Transition(doc, entity.StatusReceived)
	require.NoError(t, err)
	assert.True(t, second.Noop)
	assert.Empty(t, second.Deltas)
}

func TestOrderWorkflow_EnviadoYCancelado(t *testing.T) {
	tr, err := inventory.OrderWorkflow.Transition(orderDoc(entity.StatusPending), entity.StatusSent)
	require.NoError(t, err)
	assert.Empty(t, tr.Deltas)

	tr, err = inventory.OrderWorkflow.Transition(orderDoc(entity.StatusSent), entity.StatusReceived)
	require.NoError(t, err)
	assert.Len(t, tr.Deltas, 2)

	tr, err = inventory.OrderWorkflow.Transition(orderDoc(entity.StatusSent), entity.StatusCancelled)
	require.NoError(t, err)
	assert.Empty(t, tr.Deltas, "cancelar no toca el stock")
}

func TestOrderWorkflow_EstadosTerminales(t *testing.T) {
	for _, from := range []entity.Status{entity.StatusReceived, entity.StatusCancelled} {
		assert.True(t, inventory.OrderWorkflow.Terminal(from))
		_, err := inventory.OrderWorkflow.Transition(orderDoc(from), entity.StatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "desde %s", from)
	}
	_, err := inventory.OrderWorkflow.Transition(orderDoc(entity.StatusSent), entity.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrderWorkflow_EstadoDesconocido(t *testing.T) {
	_, err := inventory.OrderWorkflow.Transition(orderDoc(entity.StatusPending), entity.StatusProcessed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReturnWorkflow(t *testing.T) {
	items := []entity.LineItem{
		{ProductID: "p1", ProductName: "Guantes", Quantity: 3, Reason: "talla equivocada"},
		{ProductID: "p2", ProductName: "Resina", Quantity: 0},
	}
	assert.Equal(t, []inventory.Delta{{ProductID: "p1", ProductName: "Guantes", Quantity: -3}},
		inventory.ReturnWorkflow.OnCreate(items), "registrar descuenta stock")

	doc := entity.Document{ID: "dev-1", Status: entity.StatusPending, Items: items}

	tr, err := inventory.ReturnWorkflow.Transition(doc, entity.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, []inventory.Delta{{ProductID: "p1", ProductName: "Guantes", Quantity: 3}}, tr.Deltas, "rechazo repone")

	tr, err = inventory.ReturnWorkflow.Transition(doc, entity.StatusProcessed)
	require.NoError(t, err)
	assert.Empty(t, tr.Deltas)

	doc.Status = entity.StatusProcessed
	_, err = inventory.ReturnWorkflow.Transition(doc, entity.StatusRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Empty(t, inventory.OrderWorkflow.OnCreate(items))
}
