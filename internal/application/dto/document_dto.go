package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de una devolución (reason) o de un pedido (unit_price).
type LineItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Reason    string          `json:"reason" validate:"max=300"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateDocumentRequest entrada para crear una devolución o un pedido.
type CreateDocumentRequest struct {
	SupplierID   string            `json:"supplier_id" validate:"required,max=200"`
	Area         string            `json:"area" validate:"max=100"`
	Date         *time.Time        `json:"date"`
	Observations string            `json:"observations"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ChangeStatusRequest entrada para cambiar el estado.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processed rejected sent received cancelled"`
}

// DocumentQuery filtros del listado de devoluciones y pedidos.
type DocumentQuery struct {
	PeriodQuery
	Status   string `query:"status"`
	Supplier string `query:"supplier"`
}

// LineItemResponse línea de un documento.
type LineItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DocumentResponse salida de una devolución o un pedido.
type DocumentResponse struct {
	ID                string             `json:"id"`
	Date              time.Time          `json:"date"`
	SupplierID        string             `json:"supplier_id"`
	Status            string             `json:"status"`
	AppliedTransition string             `json:"applied_transition,omitempty"`
	Observations      string             `json:"observations"`
	User              string             `json:"user"`
	Area              string             `json:"area"`
	TotalQuantity     int                `json:"total_quantity"`
	Total             decimal.Decimal    `json:"total"`
	Items             []LineItemResponse `json:"items"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// StockDeltaResponse ajuste de stock aplicado por un cambio de estado.
type StockDeltaResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// StatusChangeResponse resultado de un cambio de estado.
// Applied es false cuando la transición ya estaba aplicada y no se tocó el stock.
type StatusChangeResponse struct {
	Document DocumentResponse     `json:"document"`
	Applied  bool                 `json:"applied"`
	Deltas   []StockDeltaResponse `json:"deltas"`
}
