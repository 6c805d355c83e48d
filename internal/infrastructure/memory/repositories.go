package memory

import (
	"context"

	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.UsageRepository    = (*UsageRepo)(nil)
	_ repository.ReturnRepository   = (*ReturnRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ProductRepo catálogo en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products.get(p.ID); ok {
			return domain.ErrDuplicate
		}
		st.products.put(p.ID, *p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products.get(id); ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate dentro de una transacción el store ya está bloqueado en escritura.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products.all() {
			p := p
			out = append(out, &p)
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products.get(p.ID); !ok {
			return domain.ErrNotFound
		}
		st.products.put(p.ID, *p)
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.products.remove(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct{ v view }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.purchases.get(p.ID); ok {
			return domain.ErrDuplicate
		}
		st.purchases.put(p.ID, *p)
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	r.v.read(func(st *state) {
		if p, ok := st.purchases.get(id); ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PurchaseRepo) List(_ context.Context) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	r.v.read(func(st *state) {
		for _, p := range st.purchases.all() {
			p := p
			out = append(out, &p)
		}
	})
	return out, nil
}

func (r *PurchaseRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if !st.purchases.remove(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

// UsageRepo consumos en memoria.
type UsageRepo struct{ v view }

func (r *UsageRepo) Create(_ context.Context, u *entity.UsageEntry) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.usage.get(u.ID); ok {
			return domain.ErrDuplicate
		}
		st.usage.put(u.ID, *u)
		return nil
	})
}

func (r *UsageRepo) List(_ context.Context) ([]*entity.UsageEntry, error) {
	var out []*entity.UsageEntry
	r.v.read(func(st *state) {
		for _, u := range st.usage.all() {
			u := u
			out = append(out, &u)
		}
	})
	return out, nil
}

// ReturnRepo devoluciones en memoria.
type ReturnRepo struct{ v view }

func (r *ReturnRepo) Create(_ context.Context, ret *entity.Return) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.returns.get(ret.ID); ok {
			return domain.ErrDuplicate
		}
		c := *ret
		c.Items = copyItems(ret.Items)
		st.returns.put(c.ID, c)
		return nil
	})
}

func (r *ReturnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	var out *entity.Return
	r.v.read(func(st *state) {
		if ret, ok := st.returns.get(id); ok {
			ret.Items = copyItems(ret.Items)
			out = &ret
		}
	})
	return out, nil
}

func (r *ReturnRepo) List(_ context.Context) ([]*entity.Return, error) {
	var out []*entity.Return
	r.v.read(func(st *state) {
		for _, ret := range st.returns.all() {
			ret := ret
			ret.Items = copyItems(ret.Items)
			out = append(out, &ret)
		}
	})
	return out, nil
}

func (r *ReturnRepo) UpdateStatus(_ context.Context, doc *entity.Document, from entity.Status) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.returns.get(doc.ID)
		if !ok {
			return domain.ErrNotFound
		}
		if cur.Status != from {
			return domain.ErrConflict
		}
		setStatus(&cur.Document, doc)
		st.returns.put(cur.ID, cur)
		return nil
	})
}

// OrderRepo pedidos en memoria.
type OrderRepo struct{ v view }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.orders.get(o.ID); ok {
			return domain.ErrDuplicate
		}
		c := *o
		c.Items = copyItems(o.Items)
		st.orders.put(c.ID, c)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.v.read(func(st *state) {
		if o, ok := st.orders.get(id); ok {
			o.Items = copyItems(o.Items)
			out = &o
		}
	})
	return out, nil
}

func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	var out []*entity.Order
	r.v.read(func(st *state) {
		for _, o := range st.orders.all() {
			o := o
			o.Items = copyItems(o.Items)
			out = append(out, &o)
		}
	})
	return out, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, doc *entity.Document, from entity.Status) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.orders.get(doc.ID)
		if !ok {
			return domain.ErrNotFound
		}
		if cur.Status != from {
			return domain.ErrConflict
		}
		setStatus(&cur.Document, doc)
		st.orders.put(cur.ID, cur)
		return nil
	})
}

func setStatus(cur, next *entity.Document) {
	cur.Status = next.Status
	cur.AppliedTransition = next.AppliedTransition
	cur.UpdatedAt = next.UpdatedAt
}

// UserRepo usuarios en memoria.
type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.users.all() {
			if existing.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		st.users.put(u.ID, *u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		if u, ok := st.users.get(id); ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		for _, u := range st.users.all() {
			if u.Username == username {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}
