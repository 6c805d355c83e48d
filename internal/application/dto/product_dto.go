package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name                  string          `json:"name" validate:"required,min=1,max=200"`
	Category              string          `json:"category" validate:"max=100"`
	Area                  string          `json:"area" validate:"required,max=100"`
	Quantity              int             `json:"quantity" validate:"min=0"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	MinStock              int             `json:"min_stock" validate:"min=0"`
	MaxStock              *int            `json:"max_stock" validate:"omitempty,min=0"`
	ExpirationDate        *time.Time      `json:"expiration_date"`
	ReceivedDate          *time.Time      `json:"received_date"`
	Supplier              string          `json:"supplier" validate:"max=200"`
	RequiresRefrigeration bool            `json:"requires_refrigeration"`
	Observations          string          `json:"observations"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no se modifican.
type UpdateProductRequest struct {
	Name                  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category              *string          `json:"category" validate:"omitempty,max=100"`
	Area                  *string          `json:"area" validate:"omitempty,min=1,max=100"`
	Quantity              *int             `json:"quantity" validate:"omitempty,min=0"`
	UnitPrice             *decimal.Decimal `json:"unit_price"`
	MinStock              *int             `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock              *int             `json:"max_stock" validate:"omitempty,min=0"`
	ExpirationDate        *time.Time       `json:"expiration_date"`
	ReceivedDate          *time.Time       `json:"received_date"`
	Supplier              *string          `json:"supplier" validate:"omitempty,max=200"`
	RequiresRefrigeration *bool            `json:"requires_refrigeration"`
	Saved                 *bool            `json:"saved"`
	Observations          *string          `json:"observations"`
}

// ProductFilter parámetros de búsqueda del inventario.
type ProductFilter struct {
	PageRequest
	Q        string `query:"q"`
	Area     string `query:"area"`
	Category string `query:"category"`
	Saved    string `query:"saved" validate:"omitempty,oneof=true false"`
	Alert    string `query:"alert" validate:"omitempty,oneof=LOW_STOCK OUT_OF_STOCK EXPIRED EXPIRING_SOON"`
}

// ProductResponse salida de un producto con sus alertas calculadas.
type ProductResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Category              string          `json:"category"`
	Area                  string          `json:"area"`
	Quantity              int             `json:"quantity"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	StockValue            decimal.Decimal `json:"stock_value"`
	MinStock              int             `json:"min_stock"`
	MaxStock              *int            `json:"max_stock,omitempty"`
	ExpirationDate        *time.Time      `json:"expiration_date,omitempty"`
	DaysToExpire          *int            `json:"days_to_expire,omitempty"`
	ReceivedDate          *time.Time      `json:"received_date,omitempty"`
	Supplier              string          `json:"supplier"`
	RequiresRefrigeration bool            `json:"requires_refrigeration"`
	Saved                 bool            `json:"saved"`
	Observations          string          `json:"observations"`
	Alerts                []string        `json:"alerts"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
