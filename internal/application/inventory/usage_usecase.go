package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

// UsageUseCase registro de consumos por área.
type UsageUseCase struct {
	txRunner TxRunner
	usage    repository.UsageRepository
	clock    Clock
	log      zerolog.Logger
}

// NewUsageUseCase construye el caso de uso.
func NewUsageUseCase(txRunner TxRunner, usage repository.UsageRepository, clock Clock, log zerolog.Logger) *UsageUseCase {
	return &UsageUseCase{txRunner: txRunner, usage: usage, clock: clock, log: log}
}

// Register descuenta el stock y guarda el consumo valorizado al precio actual del producto.
func (uc *UsageUseCase) Register(ctx context.Context, actor Actor, in dto.RegisterUsageRequest) (*dto.UsageResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	var entry *entity.UsageEntry
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := actor.authorize(product.Area); err != nil {
			return err
		}
		area := actor.areaFor(strings.TrimSpace(in.Area), product.Area)
		if err := actor.authorize(area); err != nil {
			return err
		}
		if product.Quantity < in.Quantity {
			return fmt.Errorf("%s: hay %d, se piden %d: %w", product.Name, product.Quantity, in.Quantity, domain.ErrInsufficientStock)
		}
		product.Quantity -= in.Quantity
		product.UpdatedAt = now
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}

		entry = &entity.UsageEntry{
			ID:          uuid.New().String(),
			Date:        date,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.UnitPrice,
			Area:        area,
			User:        actor.Username,
			CreatedAt:   now,
		}
		entry.TotalPrice = entry.Total()
		return repos.Usage.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("usage_id", entry.ID).Str("product", entry.ProductName).Int("quantity", entry.Quantity).Str("area", entry.Area).Msg("consumo registrado")
	return usageResponse(entry), nil
}

// List consumos del período, más recientes primero.
func (uc *UsageUseCase) List(ctx context.Context, actor Actor, q dto.PeriodQuery) (*dto.MovementListResponse[dto.UsageResponse], error) {
	now := uc.clock.now()
	c, err := PeriodCriteria(q, now.Location())
	if err != nil {
		return nil, err
	}
	all, err := uc.usage.List(ctx)
	if err != nil {
		return nil, err
	}
	list := inventory.Filter(inventory.Scoped(values(all), actor.Scope), c, now)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })

	items := make([]dto.UsageResponse, 0, len(list))
	for i := range list {
		items = append(items, *usageResponse(&list[i]))
	}
	return &dto.MovementListResponse[dto.UsageResponse]{Items: items, Total: inventory.Sum(list)}, nil
}

func usageResponse(u *entity.UsageEntry) *dto.UsageResponse {
	return &dto.UsageResponse{
		ID:          u.ID,
		Date:        u.Date,
		ProductID:   u.ProductID,
		ProductName: u.ProductName,
		Quantity:    u.Quantity,
		UnitPrice:   u.UnitPrice,
		Total:       u.Total(),
		Area:        u.Area,
		User:        u.User,
	}
}
