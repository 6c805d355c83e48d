package repository

import (
	"context"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia para compras (inmutables).
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	List(ctx context.Context) ([]*entity.Purchase, error)
	Delete(ctx context.Context, id string) error
}

// UsageRepository puerto de persistencia para consumos (solo se agregan).
type UsageRepository interface {
	Create(ctx context.Context, u *entity.UsageEntry) error
	List(ctx context.Context) ([]*entity.UsageEntry, error)
}
