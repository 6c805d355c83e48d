package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.UsageRepository    = (*UsageRepo)(nil)
)

const purchaseColumns = `id, date, product_id, product_name, quantity, unit_price, total_price, supplier, area, user_name, created_at`

// PurchaseRepo compras sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Date, p.ProductID, p.ProductName, p.Quantity, p.UnitPrice, p.TotalPrice,
		p.Supplier, p.Area, p.User, p.CreatedAt,
	)
	if err != nil {
		return writeError("insert purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) List(ctx context.Context) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, `SELECT `+purchaseColumns+` FROM purchases ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	out, err := collect(rows, scanPurchase)
	if err != nil {
		return nil, fmt.Errorf("scan purchases: %w", err)
	}
	return out, nil
}

func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPurchase(row scanner) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.Date, &p.ProductID, &p.ProductName, &p.Quantity, &p.UnitPrice, &p.TotalPrice,
		&p.Supplier, &p.Area, &p.User, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

const usageColumns = `id, date, product_id, product_name, quantity, unit_price, total_price, area, user_name, created_at`

// UsageRepo consumos sobre PostgreSQL.
type UsageRepo struct {
	q Querier
}

// NewUsageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsageRepository(q Querier) *UsageRepo {
	return &UsageRepo{q: q}
}

func (r *UsageRepo) Create(ctx context.Context, u *entity.UsageEntry) error {
	_, err := r.q.Exec(ctx, `INSERT INTO usage_entries (`+usageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Date, u.ProductID, u.ProductName, u.Quantity, u.UnitPrice, u.TotalPrice,
		u.Area, u.User, u.CreatedAt,
	)
	if err != nil {
		return writeError("insert usage entry", err)
	}
	return nil
}

func (r *UsageRepo) List(ctx context.Context) ([]*entity.UsageEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT `+usageColumns+` FROM usage_entries ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list usage entries: %w", err)
	}
	out, err := collect(rows, func(row scanner) (*entity.UsageEntry, error) {
		var u entity.UsageEntry
		if err := row.Scan(&u.ID, &u.Date, &u.ProductID, &u.ProductName, &u.Quantity, &u.UnitPrice, &u.TotalPrice,
			&u.Area, &u.User, &u.CreatedAt); err != nil {
			return nil, err
		}
		return &u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan usage entries: %w", err)
	}
	return out, nil
}
