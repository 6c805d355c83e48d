// Package memory almacenamiento en memoria para el modo demo (sin base de datos configurada).
// Las transacciones trabajan sobre una copia del estado que solo se publica si fn termina sin error.
package memory

import (
	"context"
	"sync"

	appinventory "github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

var (
	_ appinventory.TxRunner     = (*Store)(nil)
	_ repository.SnapshotLoader = (*Store)(nil)
)

// table filas indexadas por ID que conservan el orden de inserción.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[string]T, len(t.rows)), order: append([]string(nil), t.order...)}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

type state struct {
	products  *table[entity.Product]
	purchases *table[entity.Purchase]
	usage     *table[entity.UsageEntry]
	returns   *table[entity.Return]
	orders    *table[entity.Order]
	users     *table[entity.User]
}

func newState() *state {
	return &state{
		products:  newTable[entity.Product](),
		purchases: newTable[entity.Purchase](),
		usage:     newTable[entity.UsageEntry](),
		returns:   newTable[entity.Return](),
		orders:    newTable[entity.Order](),
		users:     newTable[entity.User](),
	}
}

func (s *state) clone() *state {
	return &state{
		products:  s.products.clone(),
		purchases: s.purchases.clone(),
		usage:     s.usage.clone(),
		returns:   s.returns.clone(),
		orders:    s.orders.clone(),
		users:     s.users.clone(),
	}
}

// Store estado completo de la aplicación en memoria.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view acceso a un estado: el publicado (con lock) o la copia de una transacción en curso (ya bloqueada).
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	fn(v.store.st)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// Run ejecuta fn con repositorios sobre una copia del estado. Las transacciones se serializan.
func (s *Store) Run(ctx context.Context, fn func(repos appinventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	v := view{store: s, tx: work}
	repos := appinventory.Repos{
		Products:  &ProductRepo{v: v},
		Purchases: &PurchaseRepo{v: v},
		Usage:     &UsageRepo{v: v},
		Returns:   &ReturnRepo{v: v},
		Orders:    &OrderRepo{v: v},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.st = work
	return nil
}

// LoadSnapshot copia las colecciones bajo lock de lectura.
func (s *Store) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &repository.Snapshot{
		Products:  s.st.products.all(),
		Purchases: s.st.purchases.all(),
		Usage:     s.st.usage.all(),
		Returns:   s.st.returns.all(),
		Orders:    s.st.orders.all(),
	}
	for i := range snap.Returns {
		snap.Returns[i].Items = copyItems(snap.Returns[i].Items)
	}
	for i := range snap.Orders {
		snap.Orders[i].Items = copyItems(snap.Orders[i].Items)
	}
	return snap, nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: view{store: s}} }

// Purchases repositorio de compras fuera de transacción.
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{v: view{store: s}} }

// Usage repositorio de consumos fuera de transacción.
func (s *Store) Usage() *UsageRepo { return &UsageRepo{v: view{store: s}} }

// Returns repositorio de devoluciones fuera de transacción.
func (s *Store) Returns() *ReturnRepo { return &ReturnRepo{v: view{store: s}} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{v: view{store: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{v: view{store: s}} }

func copyItems(items []entity.LineItem) []entity.LineItem {
	if items == nil {
		return nil
	}
	return append([]entity.LineItem(nil), items...)
}
