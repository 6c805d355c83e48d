package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products  repository.ProductRepository
	Purchases repository.PurchaseRepository
	Usage     repository.UsageRepository
	Returns   repository.ReturnRepository
	Orders    repository.OrderRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// Clock fuente de "ahora"; los casos de uso la reciben para poder fijarla en tests.
type Clock func() time.Time

// SystemClock reloj real en la zona horaria de la clínica.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Actor usuario que ejecuta la operación.
type Actor struct {
	UserID   string
	Username string
	Role     string
	Scope    inventory.Scope
}

// authorize rechaza operaciones sobre un área fuera del alcance del actor.
func (a Actor) authorize(area string) error {
	if !a.Scope.Allows(area) {
		return domain.ErrForbidden
	}
	return nil
}

// areaFor usa el área pedida, o la del actor restringido, o la alternativa.
func (a Actor) areaFor(requested, fallback string) string {
	switch {
	case requested != "":
		return requested
	case a.Scope.Restricted():
		return a.Scope.RestrictArea
	}
	return fallback
}

func values[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
