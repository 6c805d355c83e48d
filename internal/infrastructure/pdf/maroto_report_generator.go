// Package pdf exporta reportes del inventario a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Clínica + título       │  Fecha de generación       │
//	│  Subtítulo (área, período)                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte (anchos sobre 12)               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: etiqueta / valor                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/dental-inventario/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

const gridSize = 12

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	clinic string
}

var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador; clinic aparece en el encabezado.
func NewMarotoReportGenerator(clinic string) *MarotoReportGenerator {
	return &MarotoReportGenerator{clinic: clinic}
}

// Generate arma el PDF de la tabla y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(t report.Table) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(t.Title, true).
		WithAuthor(g.clinic, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(t.Widths, len(t.Headers))
	m.AddRows(tableHeaderRow(t.Headers, widths))
	m.AddRows(tableRows(t.Rows, widths)...)
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin registros para los filtros seleccionados.", props.Text{Size: 8, Top: 2, Color: colorGray, Align: align.Center}),
		)))
	}

	if len(t.Totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalsRows(t.Totals)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: clínica + título (izq) y fecha de generación (der).
func (g *MarotoReportGenerator) headerRow(t report.Table) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(nonEmpty(g.clinic, "Clínica dental"), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(t.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 5,
			}),
			text.New(t.Subtitle, props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(t.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 6,
			}),
		),
	)
}

func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// tableRows: una fila por registro, con fondo alternado.
func tableRows(rows [][]string, widths []int) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for n, cells := range rows {
		cols := make([]core.Col, 0, len(widths))
		for i, w := range widths {
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			cols = append(cols, col.New(w).Add(text.New(value, props.Text{
				Size: 8, Top: 1.5, Left: 1, Right: 1,
			})))
		}
		r := row.New(7).Add(cols...)
		if n%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

// totalsRows: bloque de totales alineado a la derecha.
func totalsRows(totals []report.Total) []core.Row {
	out := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		out = append(out, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(t.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(t.Value, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1,
			})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths usa los anchos pedidos si cubren todas las columnas; si no reparte la grilla.
func columnWidths(requested []int, n int) []int {
	if n == 0 {
		return nil
	}
	if len(requested) == n {
		ok := true
		for _, w := range requested {
			if w <= 0 {
				ok = false
				break
			}
		}
		if ok {
			return requested
		}
	}
	widths := make([]int, n)
	base, extra := gridSize/n, gridSize%n
	if base == 0 {
		base, extra = 1, 0
	}
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
