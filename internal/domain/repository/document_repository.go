package repository

import (
	"context"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// ReturnRepository puerto de persistencia para devoluciones a proveedores.
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.Return) error
	GetByID(ctx context.Context, id string) (*entity.Return, error)
	List(ctx context.Context) ([]*entity.Return, error)
	// UpdateStatus guarda el nuevo estado y la marca de la transición aplicada, solo si el
	// estado guardado sigue siendo from; si otro cambio se adelantó devuelve domain.ErrConflict.
	UpdateStatus(ctx context.Context, doc *entity.Document, from entity.Status) error
}

// OrderRepository puerto de persistencia para pedidos a proveedores.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, doc *entity.Document, from entity.Status) error
}
