package repository

import (
	"context"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// Snapshot copia de las colecciones sobre la que trabajan los reportes.
// Quien la recibe puede leerla sin bloqueos: no comparte memoria con el almacenamiento.
type Snapshot struct {
	Products  []entity.Product
	Purchases []entity.Purchase
	Usage     []entity.UsageEntry
	Returns   []entity.Return
	Orders    []entity.Order
}

// SnapshotLoader carga una Snapshot consistente del almacenamiento en uso.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}
