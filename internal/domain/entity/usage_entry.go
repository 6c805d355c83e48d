package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsageEntry consumo de un insumo en un área. Solo se agregan, nunca se editan.
type UsageEntry struct {
	ID          string
	Date        time.Time
	ProductID   string // opcional: registros antiguos solo tienen el nombre
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Area        string
	User        string
	CreatedAt   time.Time
}

// Total recalcula cantidad * precio unitario.
func (u UsageEntry) Total() decimal.Decimal {
	return u.UnitPrice.Mul(decimal.NewFromInt(int64(u.Quantity)))
}

func (u UsageEntry) Measure() (int, decimal.Decimal) { return u.Quantity, u.UnitPrice }

func (u UsageEntry) RecordDate() (time.Time, bool) { return u.Date, !u.Date.IsZero() }

func (u UsageEntry) TextField(name string) string {
	switch name {
	case FieldProduct, FieldName:
		return u.ProductName
	case FieldArea:
		return u.Area
	case FieldUser:
		return u.User
	}
	unknownField("UsageEntry", name)
	return ""
}

func (u UsageEntry) NumberField(name string) decimal.Decimal {
	switch name {
	case FieldQuantity:
		return decimal.NewFromInt(int64(u.Quantity))
	case FieldUnitPrice:
		return u.UnitPrice
	case FieldTotal:
		return u.Total()
	}
	unknownField("UsageEntry", name)
	return decimal.Zero
}

func (u UsageEntry) FlagField(name string) bool {
	unknownField("UsageEntry", name)
	return false
}
