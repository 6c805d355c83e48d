package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportQuery parámetros comunes de los reportes.
type ReportQuery struct {
	PeriodQuery
	Top int `query:"top" validate:"omitempty,min=1,max=100"`
}

// AlertRow fila de los reportes de stock y vencimiento.
type AlertRow struct {
	ProductID             string          `json:"product_id"`
	Name                  string          `json:"name"`
	Category              string          `json:"category"`
	Area                  string          `json:"area"`
	Quantity              int             `json:"quantity"`
	MinStock              int             `json:"min_stock"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	ExpirationDate        *time.Time      `json:"expiration_date,omitempty"`
	DaysToExpire          *int            `json:"days_to_expire,omitempty"`
	RequiresRefrigeration bool            `json:"requires_refrigeration"`
	Alerts                []string        `json:"alerts"`
}

// StockReport productos con stock bajo o agotado, de menor a mayor cantidad.
type StockReport struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Area        string     `json:"area,omitempty"`
	OutOfStock  int        `json:"out_of_stock"`
	LowStock    int        `json:"low_stock"`
	Items       []AlertRow `json:"items"`
}

// ExpirationReport productos vencidos primero y luego por vencer, cada grupo por fecha.
type ExpirationReport struct {
	GeneratedAt  time.Time  `json:"generated_at"`
	Area         string     `json:"area,omitempty"`
	HorizonDays  int        `json:"horizon_days"`
	Expired      int        `json:"expired"`
	ExpiringSoon int        `json:"expiring_soon"`
	Items        []AlertRow `json:"items"`
}

// GroupRow grupo agregado con su participación sobre el total.
type GroupRow struct {
	Key         string          `json:"key"`
	Count       int             `json:"count"`
	QuantitySum int             `json:"quantity_sum"`
	ValueSum    decimal.Decimal `json:"value_sum"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// MovementReport reporte de gastos (compras) o de consumo.
// PeriodTotal depende del período elegido; MonthTotal es siempre el mes calendario en curso.
type MovementReport struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	Kind          string          `json:"kind"`
	Period        string          `json:"period"`
	Since         *time.Time      `json:"since,omitempty"`
	Until         *time.Time      `json:"until,omitempty"`
	Area          string          `json:"area,omitempty"`
	GroupedBy     string          `json:"grouped_by"`
	Records       int             `json:"records"`
	TotalQuantity int             `json:"total_quantity"`
	PeriodTotal   decimal.Decimal `json:"period_total"`
	MonthTotal    decimal.Decimal `json:"month_total"`
	Groups        []GroupRow      `json:"groups"`
}

// SummaryReport totales para el panel principal.
type SummaryReport struct {
	GeneratedAt           time.Time       `json:"generated_at"`
	Area                  string          `json:"area,omitempty"`
	Products              int             `json:"products"`
	StockValue            decimal.Decimal `json:"stock_value"`
	LowStock              int             `json:"low_stock"`
	OutOfStock            int             `json:"out_of_stock"`
	Expired               int             `json:"expired"`
	ExpiringSoon          int             `json:"expiring_soon"`
	RequiresRefrigeration int             `json:"requires_refrigeration"`
	PendingReturns        int             `json:"pending_returns"`
	OpenOrders            int             `json:"open_orders"`
	SpendPeriod           decimal.Decimal `json:"spend_period"`
	SpendMonth            decimal.Decimal `json:"spend_month"`
	ConsumptionPeriod     decimal.Decimal `json:"consumption_period"`
	ConsumptionMonth      decimal.Decimal `json:"consumption_month"`
	TopSpend              []GroupRow      `json:"top_spend"`
	TopSpendGroupedBy     string          `json:"top_spend_grouped_by"`
}
