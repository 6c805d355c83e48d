package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo del inventario de la clínica.
// Quantity nunca es negativa; el tope MaxStock se valida en los casos de uso, no aquí.
type Product struct {
	ID                    string
	Name                  string
	Category              string
	Area                  string // ubicación física o funcional (ej. "Box 1", "Recepción")
	Quantity              int
	UnitPrice             decimal.Decimal
	MinStock              int
	MaxStock              *int // opcional; si existe debe ser mayor que MinStock
	ExpirationDate        *time.Time
	ReceivedDate          *time.Time
	Supplier              string
	RequiresRefrigeration bool
	Saved                 bool // marcado por el usuario para seguimiento
	Observations          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// StockValue valor del stock actual (cantidad * precio unitario).
func (p Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// RecordDate usa la fecha de recepción como fecha del registro.
func (p Product) RecordDate() (time.Time, bool) {
	if p.ReceivedDate == nil {
		return time.Time{}, false
	}
	return *p.ReceivedDate, true
}

func (p Product) TextField(name string) string {
	switch name {
	case FieldName, FieldProduct:
		return p.Name
	case FieldCategory:
		return p.Category
	case FieldArea:
		return p.Area
	case FieldSupplier:
		return p.Supplier
	case FieldObservations:
		return p.Observations
	}
	unknownField("Product", name)
	return ""
}

func (p Product) NumberField(name string) decimal.Decimal {
	switch name {
	case FieldQuantity:
		return decimal.NewFromInt(int64(p.Quantity))
	case FieldUnitPrice:
		return p.UnitPrice
	case FieldMinStock:
		return decimal.NewFromInt(int64(p.MinStock))
	case FieldMaxStock:
		if p.MaxStock == nil {
			return decimal.Zero
		}
		return decimal.NewFromInt(int64(*p.MaxStock))
	case FieldTotal:
		return p.StockValue()
	}
	unknownField("Product", name)
	return decimal.Zero
}

func (p Product) FlagField(name string) bool {
	switch name {
	case FieldSaved:
		return p.Saved
	case FieldRequiresRefrigeration:
		return p.RequiresRefrigeration
	}
	unknownField("Product", name)
	return false
}
