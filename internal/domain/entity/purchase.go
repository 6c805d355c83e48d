package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase registra una compra. Es inmutable: solo se elimina, y al eliminarla se revierte su efecto en el stock.
// ProductID es una referencia débil: el producto puede haber sido eliminado después.
type Purchase struct {
	ID          string
	Date        time.Time
	ProductID   string
	ProductName string // desnormalizado, para agrupar compras huérfanas
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal // valor almacenado; los reportes lo recalculan
	Supplier    string
	Area        string
	User        string
	CreatedAt   time.Time
}

// Total recalcula cantidad * precio unitario; el TotalPrice guardado no es confiable.
func (p Purchase) Total() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

func (p Purchase) Measure() (int, decimal.Decimal) { return p.Quantity, p.UnitPrice }

func (p Purchase) RecordDate() (time.Time, bool) { return p.Date, !p.Date.IsZero() }

func (p Purchase) TextField(name string) string {
	switch name {
	case FieldProduct, FieldName:
		return p.ProductName
	case FieldArea:
		return p.Area
	case FieldSupplier:
		return p.Supplier
	case FieldUser:
		return p.User
	}
	unknownField("Purchase", name)
	return ""
}

func (p Purchase) NumberField(name string) decimal.Decimal {
	switch name {
	case FieldQuantity:
		return decimal.NewFromInt(int64(p.Quantity))
	case FieldUnitPrice:
		return p.UnitPrice
	case FieldTotal:
		return p.Total()
	}
	unknownField("Purchase", name)
	return decimal.Zero
}

func (p Purchase) FlagField(name string) bool {
	unknownField("Purchase", name)
	return false
}
