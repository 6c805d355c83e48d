package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
)

// Table forma tabular de un reporte, independiente del formato de exportación.
type Table struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Headers     []string
	Widths      []int // columnas sobre 12
	Rows        [][]string
	Totals      []Total
}

// Total par etiqueta/valor al pie.
type Total struct {
	Label string
	Value string
}

// PDFGenerator puerto de exportación a PDF.
type PDFGenerator interface {
	Generate(t Table) ([]byte, error)
}

// StockTable tabla del reporte de stock.
func StockTable(r dto.StockReport) Table {
	t := Table{
		Title:       "Reporte de stock",
		Subtitle:    scopeLabel(r.Area),
		GeneratedAt: r.GeneratedAt,
		Headers:     []string{"Producto", "Área", "Cantidad", "Mínimo", "Alertas"},
		Widths:      []int{4, 2, 2, 1, 3},
	}
	for _, it := range r.Items {
		t.Rows = append(t.Rows, []string{it.Name, it.Area, strconv.Itoa(it.Quantity), strconv.Itoa(it.MinStock), strings.Join(it.Alerts, ", ")})
	}
	t.Totals = []Total{
		{"Sin stock", strconv.Itoa(r.OutOfStock)},
		{"Stock bajo", strconv.Itoa(r.LowStock)},
	}
	return t
}

// ExpirationTable tabla del reporte de vencimientos.
func ExpirationTable(r dto.ExpirationReport) Table {
	t := Table{
		Title:       "Reporte de vencimientos",
		Subtitle:    fmt.Sprintf("%s · horizonte %d días", scopeLabel(r.Area), r.HorizonDays),
		GeneratedAt: r.GeneratedAt,
		Headers:     []string{"Producto", "Área", "Vence", "Días", "Estado"},
		Widths:      []int{4, 2, 2, 1, 3},
	}
	for _, it := range r.Items {
		exp, days := "", ""
		if it.ExpirationDate != nil {
			exp = it.ExpirationDate.Format("02-01-2006")
		}
		if it.DaysToExpire != nil {
			days = strconv.Itoa(*it.DaysToExpire)
		}
		state := "Por vencer"
		if containsAlert(it.Alerts, "EXPIRED") {
			state = "Vencido"
		}
		t.Rows = append(t.Rows, []string{it.Name, it.Area, exp, days, state})
	}
	t.Totals = []Total{
		{"Vencidos", strconv.Itoa(r.Expired)},
		{"Por vencer", strconv.Itoa(r.ExpiringSoon)},
	}
	return t
}

// MovementTable tabla de gastos o consumo.
func MovementTable(title string, r dto.MovementReport) Table {
	first := "Área"
	if r.GroupedBy == GroupByProduct {
		first = "Producto"
	}
	t := Table{
		Title:       title,
		Subtitle:    fmt.Sprintf("%s · período %s", scopeLabel(r.Area), r.Period),
		GeneratedAt: r.GeneratedAt,
		Headers:     []string{first, "Registros", "Unidades", "Total", "%"},
		Widths:      []int{4, 2, 2, 2, 2},
	}
	for _, g := range r.Groups {
		t.Rows = append(t.Rows, []string{g.Key, strconv.Itoa(g.Count), strconv.Itoa(g.QuantitySum), FormatMoney(g.ValueSum), g.Percentage.StringFixed(2) + "%"})
	}
	t.Totals = []Total{
		{"Total del período", FormatMoney(r.PeriodTotal)},
		{"Total del mes " + MonthLabel(r.GeneratedAt), FormatMoney(r.MonthTotal)},
	}
	return t
}

// SummaryTable resumen como lista de indicadores.
func SummaryTable(r dto.SummaryReport) Table {
	t := Table{
		Title:       "Resumen de inventario",
		Subtitle:    scopeLabel(r.Area),
		GeneratedAt: r.GeneratedAt,
		Headers:     []string{"Indicador", "Valor"},
		Widths:      []int{8, 4},
		Rows: [][]string{
			{"Productos", strconv.Itoa(r.Products)},
			{"Valor del stock", FormatMoney(r.StockValue)},
			{"Stock bajo", strconv.Itoa(r.LowStock)},
			{"Sin stock", strconv.Itoa(r.OutOfStock)},
			{"Vencidos", strconv.Itoa(r.Expired)},
			{"Por vencer", strconv.Itoa(r.ExpiringSoon)},
			{"Requieren refrigeración", strconv.Itoa(r.RequiresRefrigeration)},
			{"Devoluciones pendientes", strconv.Itoa(r.PendingReturns)},
			{"Pedidos abiertos", strconv.Itoa(r.OpenOrders)},
			{"Consumo del período", FormatMoney(r.ConsumptionPeriod)},
		},
	}
	t.Totals = []Total{
		{"Gasto del período", FormatMoney(r.SpendPeriod)},
		{"Gasto del mes " + MonthLabel(r.GeneratedAt), FormatMoney(r.SpendMonth)},
	}
	return t
}

func scopeLabel(area string) string {
	if area == "" {
		return "Todas las áreas"
	}
	return "Área " + area
}

// FormatMoney formatea como pesos chilenos: "$ 1.234.567" (sin decimales salvo que existan).
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs().Round(2)
	intPart := d.Truncate(0).String()
	frac := d.Sub(d.Truncate(0))

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	s := b.String()
	if !frac.IsZero() {
		s += fmt.Sprintf(",%02d", frac.Mul(decimal.NewFromInt(100)).IntPart())
	}
	if neg {
		return "-$ " + s
	}
	return "$ " + s
}

// MonthLabel etiqueta legible del mes, ej: "Febrero 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
