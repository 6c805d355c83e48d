package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	appinventory "github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/infrastructure/memory"
)

func TestPurchaseUseCase_RegisterUpdatesStockAndAverageCost(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 10, 100))
	uc := appinventory.NewPurchaseUseCase(s, s.Purchases(), fixedClock(), nop())

	resp, err := uc.Register(context.Background(), admin, dto.RegisterPurchaseRequest{
		ProductID: "p1",
		Quantity:  5,
		UnitPrice: decimal.NewFromInt(200),
		Supplier:  "Dental Sur",
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", resp.Total.String())
	assert.Equal(t, "Box 1", resp.Area, "sin área usa la del producto")

	p, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 15, p.Quantity)
	assert.Equal(t, "133.33", p.UnitPrice.String())
	assert.Equal(t, "Dental Sur", p.Supplier)
}

func TestPurchaseUseCase_AboveMaxLeavesNothing(t *testing.T) {
	s := memory.NewStore()
	p := product("p1", "Box 1", 8, 100)
	p.MaxStock = ptr(10)
	seed(t, s, p)
	uc := appinventory.NewPurchaseUseCase(s, s.Purchases(), fixedClock(), nop())

	_, err := uc.Register(context.Background(), admin, dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, domain.ErrStockAboveMax)
	assert.Equal(t, 8, quantityOf(t, s, "p1"))

	list, err := uc.List(context.Background(), admin, dto.PeriodQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestPurchaseUseCase_ErrorsAndScope(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p2", "Box 2", 1, 100))
	uc := appinventory.NewPurchaseUseCase(s, s.Purchases(), fixedClock(), nop())
	ctx := context.Background()

	_, err := uc.Register(ctx, admin, dto.RegisterPurchaseRequest{ProductID: "p2", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, admin, dto.RegisterPurchaseRequest{ProductID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Register(ctx, asistente, dto.RegisterPurchaseRequest{ProductID: "p2", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el asistente registra en su área, no en la del producto")
}

func TestPurchaseUseCase_DeleteRevertsClampedAtZero(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 0, 100))
	uc := appinventory.NewPurchaseUseCase(s, s.Purchases(), fixedClock(), nop())
	usage := appinventory.NewUsageUseCase(s, s.Usage(), fixedClock(), nop())
	ctx := context.Background()

	resp, err := uc.Register(ctx, admin, dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = usage.Register(ctx, admin, dto.RegisterUsageRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, quantityOf(t, s, "p1"))

	require.NoError(t, uc.Delete(ctx, admin, resp.ID))
	assert.Equal(t, 0, quantityOf(t, s, "p1"))

	assert.ErrorIs(t, uc.Delete(ctx, admin, resp.ID), domain.ErrNotFound)
}

func TestPurchaseUseCase_DeleteOrphan(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 0, 100))
	uc := appinventory.NewPurchaseUseCase(s, s.Purchases(), fixedClock(), nop())
	ctx := context.Background()

	resp, err := uc.Register(ctx, admin, dto.RegisterPurchaseRequest{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(100)})
	require.NoError(t, err)
	require.NoError(t, s.Products().Delete(ctx, "p1"))

	require.NoError(t, uc.Delete(ctx, admin, resp.ID))
}

func TestPurchaseUseCase_ListPeriodAndTotal(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 0, 100), product("p2", "Box 2", 0, 100))
	uc := appinventory.NewPurchaseUseCase(s, s.Purchases(), fixedClock(), nop())
	ctx := context.Background()

	old := testNow.AddDate(0, -2, 0)
	for _, in := range []dto.RegisterPurchaseRequest{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Date: &old},
	} {
		_, err := uc.Register(ctx, admin, in)
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, admin, dto.PeriodQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, "260", all.Total.String())
	assert.True(t, all.Items[2].Date.Equal(old), "más recientes primero")

	recent, err := uc.List(ctx, admin, dto.PeriodQuery{Period: "last-30-days"})
	require.NoError(t, err)
	assert.Len(t, recent.Items, 2)
	assert.Equal(t, "250", recent.Total.String())

	scoped, err := uc.List(ctx, asistente, dto.PeriodQuery{Period: "last-30-days"})
	require.NoError(t, err)
	assert.Len(t, scoped.Items, 1)
	assert.Equal(t, "200", scoped.Total.String())

	_, err = uc.List(ctx, admin, dto.PeriodQuery{Since: "2024-03-10", Until: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, admin, dto.PeriodQuery{Period: "yesterday"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsageUseCase_Register(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 4, 250))
	uc := appinventory.NewUsageUseCase(s, s.Usage(), fixedClock(), nop())
	ctx := context.Background()

	resp, err := uc.Register(ctx, asistente, dto.RegisterUsageRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "750", resp.Total.String())
	assert.Equal(t, "Box 1", resp.Area)
	assert.Equal(t, "asistente", resp.User)
	assert.Equal(t, 1, quantityOf(t, s, "p1"))

	_, err = uc.Register(ctx, asistente, dto.RegisterUsageRequest{ProductID: "p1", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, quantityOf(t, s, "p1"))

	list, err := uc.List(ctx, admin, dto.PeriodQuery{Period: "today"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, "750", list.Total.String())
}

func TestUsageUseCase_DateFromRequest(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, product("p1", "Box 1", 4, 10))
	uc := appinventory.NewUsageUseCase(s, s.Usage(), fixedClock(), nop())
	date := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	resp, err := uc.Register(context.Background(), admin, dto.RegisterUsageRequest{ProductID: "p1", Quantity: 1, Date: &date})
	require.NoError(t, err)
	assert.True(t, resp.Date.Equal(date))

	today, err := uc.List(context.Background(), admin, dto.PeriodQuery{Period: "today"})
	require.NoError(t, err)
	assert.Empty(t, today.Items)
}
