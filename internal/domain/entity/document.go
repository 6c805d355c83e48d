package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estado de una devolución o de un pedido.
type Status string

// Estados de devoluciones: pending → processed | rejected.
// Estados de pedidos: pending → sent | received | cancelled, sent → received | cancelled.
const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusRejected  Status = "rejected"
	StatusSent      Status = "sent"
	StatusReceived  Status = "received"
	StatusCancelled Status = "cancelled"
)

// LineItem línea de una devolución (con Reason) o de un pedido (con UnitPrice).
type LineItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Reason      string
	UnitPrice   decimal.Decimal
}

// Document campos comunes de devoluciones y pedidos a proveedores.
// AppliedTransition marca la última transición cuyo efecto en el stock ya se aplicó ("pending->received").
type Document struct {
	ID                string
	Date              time.Time
	SupplierID        string
	Items             []LineItem
	Status            Status
	AppliedTransition string
	Observations      string
	User              string
	Area              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Return devolución de insumos a un proveedor.
type Return struct {
	Document
}

// Order pedido de insumos a un proveedor.
type Order struct {
	Document
}

// TotalQuantity suma de unidades de todas las líneas.
func (d Document) TotalQuantity() int {
	total := 0
	for _, it := range d.Items {
		total += it.Quantity
	}
	return total
}

// Total suma cantidad * precio unitario de cada línea.
func (d Document) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (d Document) RecordDate() (time.Time, bool) { return d.Date, !d.Date.IsZero() }

func (d Document) TextField(name string) string {
	switch name {
	case FieldSupplier:
		return d.SupplierID
	case FieldStatus:
		return string(d.Status)
	case FieldArea:
		return d.Area
	case FieldUser:
		return d.User
	case FieldObservations:
		return d.Observations
	}
	unknownField("Document", name)
	return ""
}

func (d Document) NumberField(name string) decimal.Decimal {
	switch name {
	case FieldQuantity:
		return decimal.NewFromInt(int64(d.TotalQuantity()))
	case FieldTotal:
		return d.Total()
	}
	unknownField("Document", name)
	return decimal.Zero
}

func (d Document) FlagField(name string) bool {
	unknownField("Document", name)
	return false
}
