package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	appinventory "github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/infrastructure/memory"
)

func orderRequest(items ...dto.LineItemRequest) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{SupplierID: "Dental Sur", Items: items}
}

func TestOrder_ReceivedTwiceCreditsOnce(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 2, 100))
	uc := appinventory.NewOrderUseCase(s, s.Orders(), fixedClock(), nop())
	ctx := context.Background()

	doc, err := uc.Create(ctx, admin, orderRequest(dto.LineItemRequest{ProductID: "p1", Quantity: 5}))
	require.NoError(t, err)
	assert.Equal(t, "pending", doc.Status)
	assert.Equal(t, "Box 1", doc.Area)
	assert.Equal(t, "100", doc.Items[0].UnitPrice.String(), "precio del catálogo")
	assert.Equal(t, 2, quantityOf(t, s, "p1"), "crear un pedido no mueve stock")

	first, err := uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusReceived)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	require.Len(t, first.Deltas, 1)
	assert.Equal(t, 5, first.Deltas[0].Quantity)
	assert.Equal(t, "pending->received", first.Document.AppliedTransition)
	assert.Equal(t, 7, quantityOf(t, s, "p1"))

	second, err := uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusReceived)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Empty(t, second.Deltas)
	assert.Equal(t, 7, quantityOf(t, s, "p1"))
}

func TestOrder_SentThenReceived(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 0, 100), product("p2", "Box 1", 1, 100))
	uc := appinventory.NewOrderUseCase(s, s.Orders(), fixedClock(), nop())
	ctx := context.Background()

	doc, err := uc.Create(ctx, admin, orderRequest(
		dto.LineItemRequest{ProductID: "p1", Quantity: 3},
		dto.LineItemRequest{ProductID: "p2", Quantity: 4},
	))
	require.NoError(t, err)

	sent, err := uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusSent)
	require.NoError(t, err)
	assert.True(t, sent.Applied)
	assert.Empty(t, sent.Deltas)
	assert.Equal(t, 0, quantityOf(t, s, "p1"))

	_, err = uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusProcessed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado de devoluciones")

	_, err = uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusReceived)
	require.NoError(t, err)
	assert.Equal(t, 3, quantityOf(t, s, "p1"))
	assert.Equal(t, 5, quantityOf(t, s, "p2"))

	_, err = uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrder_ReceivedAfterProductDeleted(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 0, 100), product("p2", "Box 1", 0, 100))
	uc := appinventory.NewOrderUseCase(s, s.Orders(), fixedClock(), nop())
	ctx := context.Background()

	doc, err := uc.Create(ctx, admin, orderRequest(
		dto.LineItemRequest{ProductID: "p1", Quantity: 3},
		dto.LineItemRequest{ProductID: "p2", Quantity: 2},
	))
	require.NoError(t, err)
	require.NoError(t, s.Products().Delete(ctx, "p1"))

	resp, err := uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusReceived)
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, 2, quantityOf(t, s, "p2"))
}

func TestOrder_CreateErrors(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p2", "Box 2", 0, 100))
	uc := appinventory.NewOrderUseCase(s, s.Orders(), fixedClock(), nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, orderRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, admin, orderRequest(dto.LineItemRequest{ProductID: "missing", Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, asistente, orderRequest(dto.LineItemRequest{ProductID: "p2", Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ChangeStatus(ctx, admin, "missing", entity.StatusSent)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrder_ListFiltersAndScope(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 0, 100), product("p2", "Box 2", 0, 100))
	uc := appinventory.NewOrderUseCase(s, s.Orders(), fixedClock(), nop())
	ctx := context.Background()

	d1, err := uc.Create(ctx, admin, orderRequest(dto.LineItemRequest{ProductID: "p1", Quantity: 1}))
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateDocumentRequest{SupplierID: "3M", Items: []dto.LineItemRequest{{ProductID: "p2", Quantity: 1}}})
	require.NoError(t, err)
	_, err = uc.ChangeStatus(ctx, admin, d1.ID, entity.StatusSent)
	require.NoError(t, err)

	all, err := uc.List(ctx, admin, dto.DocumentQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sent, err := uc.List(ctx, admin, dto.DocumentQuery{Status: "sent"})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, d1.ID, sent[0].ID)

	bySupplier, err := uc.List(ctx, admin, dto.DocumentQuery{Supplier: "3M"})
	require.NoError(t, err)
	assert.Len(t, bySupplier, 1)

	scoped, err := uc.List(ctx, asistente, dto.DocumentQuery{})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Box 1", scoped[0].Area)

	_, err = uc.Get(ctx, asistente, d1.ID)
	require.NoError(t, err)
}

func TestReturn_DecrementsOnCreateAndRestoresOnReject(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 5, 100))
	uc := appinventory.NewReturnUseCase(s, s.Returns(), fixedClock(), nop())
	ctx := context.Background()

	doc, err := uc.Create(ctx, admin, dto.CreateDocumentRequest{
		SupplierID: "Dental Sur",
		Items:      []dto.LineItemRequest{{ProductID: "p1", Quantity: 2, Reason: "  dañado "}},
	})
	require.NoError(t, err)
	assert.Equal(t, "dañado", doc.Items[0].Reason)
	assert.Equal(t, 3, quantityOf(t, s, "p1"))

	resp, err := uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusRejected)
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, 5, quantityOf(t, s, "p1"))

	again, err := uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusRejected)
	require.NoError(t, err)
	assert.False(t, again.Applied)
	assert.Equal(t, 5, quantityOf(t, s, "p1"))
}

func TestReturn_ProcessedKeepsStock(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 5, 100))
	uc := appinventory.NewReturnUseCase(s, s.Returns(), fixedClock(), nop())
	ctx := context.Background()

	doc, err := uc.Create(ctx, admin, dto.CreateDocumentRequest{SupplierID: "x", Items: []dto.LineItemRequest{{ProductID: "p1", Quantity: 5}}})
	require.NoError(t, err)
	assert.Equal(t, 0, quantityOf(t, s, "p1"))

	_, err = uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusProcessed)
	require.NoError(t, err)
	assert.Equal(t, 0, quantityOf(t, s, "p1"))

	_, err = uc.ChangeStatus(ctx, admin, doc.ID, entity.StatusRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReturn_MoreThanStockIsRejected(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 1, 100))
	uc := appinventory.NewReturnUseCase(s, s.Returns(), fixedClock(), nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, dto.CreateDocumentRequest{SupplierID: "x", Items: []dto.LineItemRequest{{ProductID: "p1", Quantity: 2}}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, quantityOf(t, s, "p1"))

	list, err := uc.List(ctx, admin, dto.DocumentQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
