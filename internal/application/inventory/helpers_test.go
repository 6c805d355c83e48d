package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/infrastructure/memory"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() appinventory.Clock { return func() time.Time { return testNow } }

var (
	admin     = appinventory.Actor{UserID: "u1", Username: "admin", Role: entity.RoleAdmin}
	asistente = appinventory.Actor{UserID: "u2", Username: "asistente", Role: entity.RoleAsistente, Scope: inventory.Scope{RestrictArea: "Box 1"}}
)

func ptr[T any](v T) *T { return &v }

// seed guarda productos directamente en el store.
func seed(t *testing.T, s *memory.Store, products ...*entity.Product) {
	t.Helper()
	for _, p := range products {
		require.NoError(t, s.Products().Create(context.Background(), p))
	}
}

func product(id, area string, qty int, price int64) *entity.Product {
	return &entity.Product{
		ID:        id,
		Name:      "Insumo " + id,
		Area:      area,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(price),
		MinStock:  2,
	}
}

func quantityOf(t *testing.T, s *memory.Store, id string) int {
	t.Helper()
	p, err := s.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func nop() zerolog.Logger { return zerolog.Nop() }
