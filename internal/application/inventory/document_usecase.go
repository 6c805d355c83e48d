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

// docStore acceso a devoluciones o a pedidos a través del mismo contrato.
type docStore interface {
	create(ctx context.Context, repos Repos, doc entity.Document) error
	get(ctx context.Context, repos Repos, id string) (*entity.Document, error)
	list(ctx context.Context) ([]entity.Document, error)
	updateStatus(ctx context.Context, repos Repos, doc *entity.Document, from entity.Status) error
}

// DocumentUseCase casos de uso de devoluciones o pedidos a proveedores.
// Los cambios de estado pasan por el Workflow: el cálculo es puro y los ajustes de stock
// se aplican una sola vez, en la misma transacción que guarda el estado y la marca.
type DocumentUseCase struct {
	kind     string
	workflow inventory.Workflow
	store    docStore
	txRunner TxRunner
	clock    Clock
	log      zerolog.Logger
}

// NewReturnUseCase casos de uso de devoluciones.
func NewReturnUseCase(txRunner TxRunner, returns repository.ReturnRepository, clock Clock, log zerolog.Logger) *DocumentUseCase {
	return &DocumentUseCase{
		kind:     "devolución",
		workflow: inventory.ReturnWorkflow,
		store:    returnStore{base: returns},
		txRunner: txRunner,
		clock:    clock,
		log:      log,
	}
}

// NewOrderUseCase casos de uso de pedidos.
func NewOrderUseCase(txRunner TxRunner, orders repository.OrderRepository, clock Clock, log zerolog.Logger) *DocumentUseCase {
	return &DocumentUseCase{
		kind:     "pedido",
		workflow: inventory.OrderWorkflow,
		store:    orderStore{base: orders},
		txRunner: txRunner,
		clock:    clock,
		log:      log,
	}
}

// Create registra el documento en estado pending. Las líneas toman nombre y precio del catálogo
// y, si el flujo lo indica (devoluciones), el stock se descuenta en la misma transacción.
func (uc *DocumentUseCase) Create(ctx context.Context, actor Actor, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%s sin líneas: %w", uc.kind, domain.ErrInvalidInput)
	}
	area := actor.areaFor(strings.TrimSpace(in.Area), "")
	if err := actor.authorize(area); err != nil {
		return nil, err
	}
	now := uc.clock.now()
	doc := entity.Document{
		ID:           uuid.New().String(),
		Date:         now,
		SupplierID:   strings.TrimSpace(in.SupplierID),
		Status:       entity.StatusPending,
		Observations: in.Observations,
		User:         actor.Username,
		Area:         area,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Date != nil {
		doc.Date = *in.Date
	}

	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		for _, it := range in.Items {
			if it.Quantity <= 0 || it.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			p, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			if err := actor.authorize(p.Area); err != nil {
				return err
			}
			price := it.UnitPrice
			if price.IsZero() {
				price = p.UnitPrice
			}
			doc.Items = append(doc.Items, entity.LineItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Reason:      strings.TrimSpace(it.Reason),
				UnitPrice:   price,
			})
			if doc.Area == "" {
				doc.Area = p.Area
			}
		}
		if err := uc.applyDeltas(ctx, repos, doc.ID, uc.workflow.OnCreate(doc.Items)); err != nil {
			return err
		}
		return uc.store.create(ctx, repos, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kind", uc.kind).Str("id", doc.ID).Int("items", len(doc.Items)).Msg("documento registrado")
	return documentResponse(&doc), nil
}

// Get obtiene un documento.
func (uc *DocumentUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.DocumentResponse, error) {
	var doc *entity.Document
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		doc, err = uc.store.get(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.authorize(doc.Area); err != nil {
		return nil, err
	}
	return documentResponse(doc), nil
}

// List documentos del período filtrados por estado y proveedor, más recientes primero.
func (uc *DocumentUseCase) List(ctx context.Context, actor Actor, q dto.DocumentQuery) ([]dto.DocumentResponse, error) {
	now := uc.clock.now()
	c, err := PeriodCriteria(q.PeriodQuery, now.Location())
	if err != nil {
		return nil, err
	}
	c.Equals = append(c.Equals,
		inventory.EqualsClause{Field: entity.FieldStatus, Value: q.Status},
		inventory.EqualsClause{Field: entity.FieldSupplier, Value: q.Supplier},
	)
	all, err := uc.store.list(ctx)
	if err != nil {
		return nil, err
	}
	docs := inventory.Filter(inventory.Scoped(all, actor.Scope), c, now)
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Date.After(docs[j].Date) })

	out := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, *documentResponse(&docs[i]))
	}
	return out, nil
}

// ChangeStatus aplica una transición. Repetir una transición ya aplicada no modifica el stock
// y responde Applied=false.
func (uc *DocumentUseCase) ChangeStatus(ctx context.Context, actor Actor, id string, to entity.Status) (*dto.StatusChangeResponse, error) {
	var (
		doc *entity.Document
		tr  inventory.Transition
	)
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		var err error
		doc, err = uc.store.get(ctx, repos, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if err := actor.authorize(doc.Area); err != nil {
			return err
		}
		tr, err = uc.workflow.Transition(*doc, to)
		if err != nil {
			return err
		}
		if tr.Noop {
			return nil
		}
		doc.Status = tr.To
		doc.AppliedTransition = tr.Marker
		doc.UpdatedAt = uc.clock.now()
		if err := uc.store.updateStatus(ctx, repos, doc, tr.From); err != nil {
			return err
		}
		return uc.applyDeltas(ctx, repos, doc.ID, tr.Deltas)
	})
	if err != nil {
		return nil, err
	}

	if tr.Noop {
		uc.log.Info().Str("kind", uc.kind).Str("id", id).Str("status", string(to)).Msg("transición ya aplicada, sin cambios de stock")
	} else {
		uc.log.Info().Str("kind", uc.kind).Str("id", id).Str("transition", tr.Marker).Int("deltas", len(tr.Deltas)).Msg("estado actualizado")
	}

	resp := &dto.StatusChangeResponse{
		Document: *documentResponse(doc),
		Applied:  !tr.Noop,
		Deltas:   make([]dto.StockDeltaResponse, 0, len(tr.Deltas)),
	}
	for _, d := range tr.Deltas {
		resp.Deltas = append(resp.Deltas, dto.StockDeltaResponse{ProductID: d.ProductID, ProductName: d.ProductName, Quantity: d.Quantity})
	}
	return resp, nil
}

// applyDeltas ajusta el stock. Las líneas cuyo producto ya no existe se omiten con un aviso;
// un descuento que dejaría stock negativo aborta la transacción.
func (uc *DocumentUseCase) applyDeltas(ctx context.Context, repos Repos, docID string, deltas []inventory.Delta) error {
	for _, d := range deltas {
		if d.ProductID == "" {
			uc.log.Warn().Str("id", docID).Str("product", d.ProductName).Msg("línea sin producto, se omite el ajuste")
			continue
		}
		p, err := repos.Products.GetForUpdate(ctx, d.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			uc.log.Warn().Str("id", docID).Str("product_id", d.ProductID).Str("product", d.ProductName).Msg("producto eliminado, se omite el ajuste")
			continue
		}
		qty := p.Quantity + d.Quantity
		if qty < 0 {
			return fmt.Errorf("%s: hay %d, se descuentan %d: %w", p.Name, p.Quantity, -d.Quantity, domain.ErrInsufficientStock)
		}
		p.Quantity = qty
		p.UpdatedAt = uc.clock.now()
		if err := repos.Products.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func documentResponse(d *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:                d.ID,
		Date:              d.Date,
		SupplierID:        d.SupplierID,
		Status:            string(d.Status),
		AppliedTransition: d.AppliedTransition,
		Observations:      d.Observations,
		User:              d.User,
		Area:              d.Area,
		TotalQuantity:     d.TotalQuantity(),
		Total:             d.Total(),
		Items:             make([]dto.LineItemResponse, 0, len(d.Items)),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Reason:      it.Reason,
			UnitPrice:   it.UnitPrice,
		})
	}
	return resp
}

type returnStore struct{ base repository.ReturnRepository }

func (s returnStore) create(ctx context.Context, repos Repos, doc entity.Document) error {
	return repos.Returns.Create(ctx, &entity.Return{Document: doc})
}

func (s returnStore) get(ctx context.Context, repos Repos, id string) (*entity.Document, error) {
	r, err := repos.Returns.GetByID(ctx, id)
	if err != nil || r == nil {
		return nil, err
	}
	return &r.Document, nil
}

func (s returnStore) list(ctx context.Context) ([]entity.Document, error) {
	rs, err := s.base.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Document, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Document)
	}
	return out, nil
}

func (s returnStore) updateStatus(ctx context.Context, repos Repos, doc *entity.Document, from entity.Status) error {
	return repos.Returns.UpdateStatus(ctx, doc, from)
}

type orderStore struct{ base repository.OrderRepository }

func (s orderStore) create(ctx context.Context, repos Repos, doc entity.Document) error {
	return repos.Orders.Create(ctx, &entity.Order{Document: doc})
}

func (s orderStore) get(ctx context.Context, repos Repos, id string) (*entity.Document, error) {
	o, err := repos.Orders.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return &o.Document, nil
}

func (s orderStore) list(ctx context.Context) ([]entity.Document, error) {
	orders, err := s.base.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Document, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Document)
	}
	return out, nil
}

func (s orderStore) updateStatus(ctx context.Context, repos Repos, doc *entity.Document, from entity.Status) error {
	return repos.Orders.UpdateStatus(ctx, doc, from)
}
