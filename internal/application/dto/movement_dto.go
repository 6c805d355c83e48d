package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPurchaseRequest entrada para registrar una compra.
type RegisterPurchaseRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Supplier  string          `json:"supplier" validate:"max=200"`
	Area      string          `json:"area" validate:"max=100"`
	Date      *time.Time      `json:"date"`
}

// PurchaseResponse salida de una compra. Total siempre es cantidad * precio unitario.
type PurchaseResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Supplier    string          `json:"supplier"`
	Area        string          `json:"area"`
	User        string          `json:"user"`
}

// RegisterUsageRequest entrada para registrar un consumo.
type RegisterUsageRequest struct {
	ProductID string     `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
	Area      string     `json:"area" validate:"max=100"`
	Date      *time.Time `json:"date"`
}

// UsageResponse salida de un consumo.
type UsageResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Area        string          `json:"area"`
	User        string          `json:"user"`
}

// MovementListResponse lista de compras o consumos con su total recalculado.
type MovementListResponse[T any] struct {
	Items []T             `json:"items"`
	Total decimal.Decimal `json:"total"`
}
