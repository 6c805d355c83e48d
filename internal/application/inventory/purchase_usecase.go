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

// PurchaseUseCase registro de compras: cada compra suma stock y recalcula el precio promedio.
type PurchaseUseCase struct {
	txRunner  TxRunner
	purchases repository.PurchaseRepository
	clock     Clock
	log       zerolog.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner TxRunner, purchases repository.PurchaseRepository, clock Clock, log zerolog.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, purchases: purchases, clock: clock, log: log}
}

// Register bloquea el producto, suma la cantidad, actualiza el costo promedio ponderado
// y guarda la compra, todo en una transacción.
func (uc *PurchaseUseCase) Register(ctx context.Context, actor Actor, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	var purchase *entity.Purchase
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
		newQty := product.Quantity + in.Quantity
		if err := checkMax(product, newQty); err != nil {
			return err
		}

		product.UnitPrice = inventory.WeightedUnitPrice(product.Quantity, product.UnitPrice, in.Quantity, in.UnitPrice)
		product.Quantity = newQty
		product.ReceivedDate = &date
		product.UpdatedAt = now
		supplier := strings.TrimSpace(in.Supplier)
		if supplier == "" {
			supplier = product.Supplier
		} else {
			product.Supplier = supplier
		}
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}

		purchase = &entity.Purchase{
			ID:          uuid.New().String(),
			Date:        date,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Supplier:    supplier,
			Area:        area,
			User:        actor.Username,
			CreatedAt:   now,
		}
		purchase.TotalPrice = purchase.Total()
		return repos.Purchases.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("purchase_id", purchase.ID).
		Str("product_id", purchase.ProductID).
		Int("quantity", purchase.Quantity).
		Str("total", purchase.TotalPrice.String()).
		Msg("compra registrada")
	return purchaseResponse(purchase), nil
}

// List compras del período, más recientes primero, con el total recalculado.
func (uc *PurchaseUseCase) List(ctx context.Context, actor Actor, q dto.PeriodQuery) (*dto.MovementListResponse[dto.PurchaseResponse], error) {
	now := uc.clock.now()
	c, err := PeriodCriteria(q, now.Location())
	if err != nil {
		return nil, err
	}
	all, err := uc.purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	list := inventory.Filter(inventory.Scoped(values(all), actor.Scope), c, now)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })

	items := make([]dto.PurchaseResponse, 0, len(list))
	for i := range list {
		items = append(items, *purchaseResponse(&list[i]))
	}
	return &dto.MovementListResponse[dto.PurchaseResponse]{Items: items, Total: inventory.Sum(list)}, nil
}

// Delete elimina la compra y revierte su cantidad en el producto (sin bajar de cero).
// Si el producto ya no existe solo se elimina la compra.
func (uc *PurchaseUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	return uc.txRunner.Run(ctx, func(repos Repos) error {
		purchase, err := repos.Purchases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if err := actor.authorize(purchase.Area); err != nil {
			return err
		}

		product, err := repos.Products.GetForUpdate(ctx, purchase.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			uc.log.Warn().Str("purchase_id", id).Str("product", purchase.ProductName).Msg("compra huérfana: no hay stock que revertir")
		} else {
			product.Quantity -= purchase.Quantity
			if product.Quantity < 0 {
				product.Quantity = 0
			}
			product.UpdatedAt = uc.clock.now()
			if err := repos.Products.Update(ctx, product); err != nil {
				return err
			}
		}
		if err := repos.Purchases.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar compra %s: %w", id, err)
		}
		return nil
	})
}

func purchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:          p.ID,
		Date:        p.Date,
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		Total:       p.Total(),
		Supplier:    p.Supplier,
		Area:        p.Area,
		User:        p.User,
	}
}
