package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/internal/application/report"
)

func TestColumnWidths(t *testing.T) {
	assert.Equal(t, []int{4, 2, 2, 1, 3}, columnWidths([]int{4, 2, 2, 1, 3}, 5))
	assert.Equal(t, []int{4, 4, 4}, columnWidths(nil, 3))
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnWidths([]int{1, 2}, 5))
	assert.Equal(t, []int{6, 6}, columnWidths([]int{0, 12}, 2))
	assert.Nil(t, columnWidths(nil, 0))
}

func TestGenerate(t *testing.T) {
	g := NewMarotoReportGenerator("Clínica Sonrisa")
	out, err := g.Generate(report.Table{
		Title:       "Reporte de gastos",
		Subtitle:    "Todas las áreas · last-30-days",
		GeneratedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Headers:     []string{"Área", "Registros", "Cantidad", "Valor", "%"},
		Widths:      []int{4, 2, 2, 2, 2},
		Rows: [][]string{
			{"Box 1", "2", "3", "$ 2.500", "71.43%"},
			{"Box 2", "1", "1", "$ 1.000", "28.57%"},
		},
		Totals: []report.Total{{Label: "Total período", Value: "$ 3.500"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_EmptyTable(t *testing.T) {
	out, err := NewMarotoReportGenerator("").Generate(report.Table{Title: "Reporte de stock", Headers: []string{"Producto"}})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
