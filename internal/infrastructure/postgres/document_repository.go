package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

var (
	_ repository.ReturnRepository = (*ReturnRepo)(nil)
	_ repository.OrderRepository  = (*OrderRepo)(nil)
)

const documentColumns = `id, date, supplier_id, items, status, applied_transition, observations, user_name, area, created_at, updated_at`

// lineItemRow forma de cada línea dentro de la columna items (JSONB).
type lineItemRow struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func encodeItems(items []entity.LineItem) ([]byte, error) {
	rows := make([]lineItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, lineItemRow(it))
	}
	return json.Marshal(rows)
}

func decodeItems(raw []byte) ([]entity.LineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []lineItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	items := make([]entity.LineItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, entity.LineItem(r))
	}
	return items, nil
}

// documents acceso compartido a las tablas returns y orders, que tienen la misma forma.
type documents struct {
	q     Querier
	table string
}

func (d documents) create(ctx context.Context, doc *entity.Document) error {
	items, err := encodeItems(doc.Items)
	if err != nil {
		return fmt.Errorf("encode %s items: %w", d.table, err)
	}
	_, err = d.q.Exec(ctx, `INSERT INTO `+d.table+` (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		doc.ID, doc.Date, doc.SupplierID, items, string(doc.Status), doc.AppliedTransition,
		doc.Observations, doc.User, doc.Area, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return writeError("insert "+d.table, err)
	}
	return nil
}

func (d documents) get(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := scanDocument(d.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM `+d.table+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", d.table, err)
	}
	return doc, nil
}

func (d documents) list(ctx context.Context) ([]*entity.Document, error) {
	rows, err := d.q.Query(ctx, `SELECT `+documentColumns+` FROM `+d.table+` ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.table, err)
	}
	out, err := collect(rows, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", d.table, err)
	}
	return out, nil
}

// updateStatus escribe estado y marca solo si el estado guardado sigue siendo from.
func (d documents) updateStatus(ctx context.Context, doc *entity.Document, from entity.Status) error {
	cmd, err := d.q.Exec(ctx, `UPDATE `+d.table+` SET status = $2, applied_transition = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		doc.ID, string(doc.Status), doc.AppliedTransition, doc.UpdatedAt, string(from),
	)
	if err != nil {
		return fmt.Errorf("update %s status: %w", d.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s %s ya no está en %s: %w", d.table, doc.ID, from, domain.ErrConflict)
	}
	return nil
}

func scanDocument(row scanner) (*entity.Document, error) {
	var (
		doc    entity.Document
		items  []byte
		status string
	)
	if err := row.Scan(&doc.ID, &doc.Date, &doc.SupplierID, &items, &status, &doc.AppliedTransition,
		&doc.Observations, &doc.User, &doc.Area, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.Status = entity.Status(status)
	var err error
	if doc.Items, err = decodeItems(items); err != nil {
		return nil, fmt.Errorf("decode items %s: %w", doc.ID, err)
	}
	return &doc, nil
}

// ReturnRepo devoluciones sobre PostgreSQL.
type ReturnRepo struct {
	docs documents
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{docs: documents{q: q, table: "returns"}}
}

func (r *ReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	return r.docs.create(ctx, &ret.Document)
}

func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	doc, err := r.docs.get(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return &entity.Return{Document: *doc}, nil
}

func (r *ReturnRepo) List(ctx context.Context) ([]*entity.Return, error) {
	docs, err := r.docs.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Return, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.Return{Document: *d})
	}
	return out, nil
}

func (r *ReturnRepo) UpdateStatus(ctx context.Context, doc *entity.Document, from entity.Status) error {
	return r.docs.updateStatus(ctx, doc, from)
}

// OrderRepo pedidos sobre PostgreSQL.
type OrderRepo struct {
	docs documents
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{docs: documents{q: q, table: "orders"}}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.docs.create(ctx, &o.Document)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.docs.get(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return &entity.Order{Document: *doc}, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	docs, err := r.docs.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.Order{Document: *d})
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, doc *entity.Document, from entity.Status) error {
	return r.docs.updateStatus(ctx, doc, from)
}
