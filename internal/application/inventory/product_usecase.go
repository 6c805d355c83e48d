package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. El stock también cambia vía compras, consumos y documentos,
// por eso Update y Delete leen la fila bloqueada dentro de una transacción.
type ProductUseCase struct {
	txRunner   TxRunner
	repo       repository.ProductRepository
	classifier *inventory.Classifier
	clock      Clock
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner TxRunner, repo repository.ProductRepository, classifier *inventory.Classifier, clock Clock, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, classifier: classifier, clock: clock, log: log}
}

// Create crea un producto en el área indicada (o la del asistente).
func (uc *ProductUseCase) Create(ctx context.Context, actor Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	area := actor.areaFor(strings.TrimSpace(in.Area), "")
	if err := actor.authorize(area); err != nil {
		return nil, err
	}
	now := uc.clock.now()
	p := &entity.Product{
		ID:                    uuid.New().String(),
		Name:                  strings.TrimSpace(in.Name),
		Category:              strings.TrimSpace(in.Category),
		Area:                  area,
		Quantity:              in.Quantity,
		UnitPrice:             in.UnitPrice,
		MinStock:              in.MinStock,
		MaxStock:              in.MaxStock,
		ExpirationDate:        in.ExpirationDate,
		ReceivedDate:          in.ReceivedDate,
		Supplier:              strings.TrimSpace(in.Supplier),
		RequiresRefrigeration: in.RequiresRefrigeration,
		Observations:          in.Observations,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if p.ReceivedDate == nil {
		p.ReceivedDate = &now
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("area", p.Area).Int("quantity", p.Quantity).Msg("producto creado")
	return uc.toResponse(p, now), nil
}

// Get obtiene un producto con sus alertas.
func (uc *ProductUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.ProductResponse, error) {
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(p, uc.clock.now()), nil
}

// List filtra el catálogo con el motor de filtros. El alcance del actor se aplica primero.
func (uc *ProductUseCase) List(ctx context.Context, actor Actor, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.clock.now()
	products := inventory.Scoped(values(all), actor.Scope)

	c := inventory.Criteria{
		Text: []inventory.TextClause{{Field: entity.FieldName, Contains: f.Q}},
		Equals: []inventory.EqualsClause{
			{Field: entity.FieldArea, Value: f.Area},
			{Field: entity.FieldCategory, Value: f.Category},
		},
	}
	if f.Saved != "" {
		c.Flags = append(c.Flags, inventory.FlagClause{Field: entity.FieldSaved, Value: f.Saved == "true"})
	}
	products = inventory.Filter(products, c, now)

	if f.Alert != "" {
		flag := inventory.ParseAlert(f.Alert)
		if flag == 0 {
			return nil, fmt.Errorf("alerta %q: %w", f.Alert, domain.ErrInvalidInput)
		}
		kept := products[:0]
		for _, p := range products {
			if uc.classifier.Classify(now, p).Has(flag) {
				kept = append(kept, p)
			}
		}
		products = kept
	}

	sort.SliceStable(products, func(i, j int) bool {
		return inventory.Fold(products[i].Name) < inventory.Fold(products[j].Name)
	})

	page := f.PageRequest
	page.DefaultPage()
	from, to := page.Window(len(products))
	items := make([]dto.ProductResponse, 0, to-from)
	for i := from; i < to; i++ {
		items = append(items, *uc.toResponse(&products[i], now))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(products)},
	}, nil
}

// Update aplica los campos presentes. Cambiar de área exige que ambas estén en el alcance.
func (uc *ProductUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	now := uc.clock.now()
	var p *entity.Product
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		p, err = uc.lockAndAuthorize(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
		}
		if in.Area != nil {
			area := strings.TrimSpace(*in.Area)
			if err := actor.authorize(area); err != nil {
				return err
			}
			p.Area = area
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			p.UnitPrice = *in.UnitPrice
		}
		if in.MinStock != nil {
			p.MinStock = *in.MinStock
		}
		if in.MaxStock != nil {
			p.MaxStock = in.MaxStock
		}
		if in.ExpirationDate != nil {
			p.ExpirationDate = in.ExpirationDate
		}
		if in.ReceivedDate != nil {
			p.ReceivedDate = in.ReceivedDate
		}
		if in.Supplier != nil {
			p.Supplier = strings.TrimSpace(*in.Supplier)
		}
		if in.RequiresRefrigeration != nil {
			p.RequiresRefrigeration = *in.RequiresRefrigeration
		}
		if in.Saved != nil {
			p.Saved = *in.Saved
		}
		if in.Observations != nil {
			p.Observations = *in.Observations
		}
		if err := validateProduct(p); err != nil {
			return err
		}
		p.UpdatedAt = now
		return repos.Products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(p, now), nil
}

// Delete elimina el producto. Las compras y consumos históricos quedan huérfanos y se agrupan por nombre.
func (uc *ProductUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	var p *entity.Product
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		p, err = uc.lockAndAuthorize(ctx, repos, actor, id)
		if err != nil {
			return err
		}
		return repos.Products.Delete(ctx, p.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("producto eliminado")
	return nil
}

// lockAndAuthorize lee el producto con bloqueo de fila y verifica el alcance del actor.
func (uc *ProductUseCase) lockAndAuthorize(ctx context.Context, repos Repos, actor Actor, id string) (*entity.Product, error) {
	p, err := repos.Products.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.authorize(p.Area); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUseCase) load(ctx context.Context, actor Actor, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.authorize(p.Area); err != nil {
		return nil, err
	}
	return p, nil
}

// validateProduct reglas del borde de mutación: cantidades no negativas, máximo mayor que mínimo
// y stock que no supera el máximo.
func validateProduct(p *entity.Product) error {
	if p.Name == "" || p.Area == "" {
		return fmt.Errorf("nombre y área son obligatorios: %w", domain.ErrInvalidInput)
	}
	if p.Quantity < 0 || p.MinStock < 0 || p.UnitPrice.IsNegative() {
		return fmt.Errorf("cantidades y precio no pueden ser negativos: %w", domain.ErrInvalidInput)
	}
	if p.MaxStock != nil {
		if *p.MaxStock <= p.MinStock {
			return fmt.Errorf("stock máximo %d debe superar el mínimo %d: %w", *p.MaxStock, p.MinStock, domain.ErrInvalidInput)
		}
		return checkMax(p, p.Quantity)
	}
	return nil
}

// checkMax rechaza una entrada de stock que deja el producto sobre su máximo.
func checkMax(p *entity.Product, newQty int) error {
	if p.MaxStock != nil && newQty > *p.MaxStock {
		return fmt.Errorf("%s: %d > %d: %w", p.Name, newQty, *p.MaxStock, domain.ErrStockAboveMax)
	}
	return nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product, now time.Time) *dto.ProductResponse {
	return productResponse(p, uc.classifier, now)
}

func productResponse(p *entity.Product, c *inventory.Classifier, now time.Time) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Category:              p.Category,
		Area:                  p.Area,
		Quantity:              p.Quantity,
		UnitPrice:             p.UnitPrice,
		StockValue:            p.StockValue(),
		MinStock:              p.MinStock,
		MaxStock:              p.MaxStock,
		ExpirationDate:        p.ExpirationDate,
		ReceivedDate:          p.ReceivedDate,
		Supplier:              p.Supplier,
		RequiresRefrigeration: c.RequiresRefrigeration(*p),
		Saved:                 p.Saved,
		Observations:          p.Observations,
		Alerts:                c.Classify(now, *p).Names(),
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if days, ok := c.DaysUntilExpiration(now, *p); ok {
		resp.DaysToExpire = &days
	}
	return resp
}
