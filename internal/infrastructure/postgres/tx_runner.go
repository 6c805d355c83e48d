package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

var (
	_ inventory.TxRunner        = (*TxRunner)(nil)
	_ repository.SnapshotLoader = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// LoadSnapshot lee todas las colecciones en una transacción de solo lectura REPEATABLE READ,
// así los reportes ven un estado consistente aunque haya escrituras concurrentes.
func (r *TxRunner) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := reposFor(tx)
	products, err := repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	purchases, err := repos.Purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	usage, err := repos.Usage.List(ctx)
	if err != nil {
		return nil, err
	}
	returns, err := repos.Returns.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := repos.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return &repository.Snapshot{
		Products:  deref(products),
		Purchases: deref(purchases),
		Usage:     deref(usage),
		Returns:   deref(returns),
		Orders:    deref(orders),
	}, nil
}

func reposFor(q Querier) inventory.Repos {
	return inventory.Repos{
		Products:  NewProductRepository(q),
		Purchases: NewPurchaseRepository(q),
		Usage:     NewUsageRepository(q),
		Returns:   NewReturnRepository(q),
		Orders:    NewOrderRepository(q),
	}
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}

// Repositorios sobre el pool, para lecturas fuera de transacción.

func (r *TxRunner) Products() *ProductRepo   { return NewProductRepository(r.pool) }
func (r *TxRunner) Purchases() *PurchaseRepo { return NewPurchaseRepository(r.pool) }
func (r *TxRunner) Usage() *UsageRepo        { return NewUsageRepository(r.pool) }
func (r *TxRunner) Returns() *ReturnRepo     { return NewReturnRepository(r.pool) }
func (r *TxRunner) Orders() *OrderRepo       { return NewOrderRepository(r.pool) }
func (r *TxRunner) Users() *UserRepo         { return NewUserRepository(r.pool) }

