package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/application/report"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func date(m time.Month, d int) time.Time { return time.Date(2024, m, d, 10, 0, 0, 0, time.UTC) }

func datePtr(m time.Month, d int) *time.Time {
	t := date(m, d)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...interface{}) {
	t.Helper()
	assert.Equal(t, dec(want).String(), got.String(), msg...)
}

func buildSnapshot() *repository.Snapshot {
	return &repository.Snapshot{
		Products: []entity.Product{
			{ID: "a", Name: "Guantes de nitrilo M", Area: "Box 1", Quantity: 3, MinStock: 5, UnitPrice: dec("100")},
			{ID: "b", Name: "Composite A2", Area: "Box 1", Quantity: 0, MinStock: 2, UnitPrice: dec("15000"), ExpirationDate: datePtr(time.April, 1)},
			{ID: "c", Name: "Anestesia lidocaína", Area: "Box 2", Quantity: 20, MinStock: 5, UnitPrice: dec("1000"), ExpirationDate: datePtr(time.March, 1)},
			{ID: "d", Name: "Algodón", Area: "Box 2", Quantity: 50, MinStock: 10, UnitPrice: dec("10"), ExpirationDate: datePtr(time.March, 20)},
			{ID: "e", Name: "Eyectores", Area: "Box 1", Quantity: 5, MinStock: 5, UnitPrice: dec("200")},
		},
		Purchases: []entity.Purchase{
			{ID: "p1", Date: date(time.March, 14), ProductID: "a", ProductName: "Guantes", Quantity: 2, UnitPrice: dec("1000"), TotalPrice: dec("9999"), Area: "Box 1"},
			{ID: "p2", Date: date(time.March, 10), ProductID: "b", ProductName: "Composite A2", Quantity: 1, UnitPrice: dec("500"), Area: "Box 1"},
			{ID: "p3", Date: date(time.March, 12), ProductID: "borrado", ProductName: "Eyector desechable", Quantity: 4, UnitPrice: dec("250"), Area: "Box 2"},
			{ID: "p4", Date: date(time.February, 20), ProductID: "a", ProductName: "Guantes", Quantity: 10, UnitPrice: dec("100"), Area: "Box 2"},
		},
		Usage: []entity.UsageEntry{
			{ID: "u1", Date: date(time.March, 15), ProductName: "Algodón", Quantity: 5, UnitPrice: dec("10"), Area: "Box 2"},
			{ID: "u2", Date: date(time.March, 1), ProductID: "a", ProductName: "Guantes", Quantity: 1, UnitPrice: dec("100"), Area: "Box 1"},
		},
		Returns: []entity.Return{
			{Document: entity.Document{ID: "r1", Date: date(time.March, 2), Status: entity.StatusPending, Area: "Box 1"}},
			{Document: entity.Document{ID: "r2", Date: date(time.March, 3), Status: entity.StatusProcessed, Area: "Box 1"}},
		},
		Orders: []entity.Order{
			{Document: entity.Document{ID: "o1", Date: date(time.March, 4), Status: entity.StatusPending, Area: "Box 2"}},
			{Document: entity.Document{ID: "o2", Date: date(time.March, 5), Status: entity.StatusSent, Area: "Box 1"}},
			{Document: entity.Document{ID: "o3", Date: date(time.March, 6), Status: entity.StatusReceived, Area: "Box 1"}},
		},
	}
}

func newAssembler() *report.Assembler {
	return report.NewAssembler(inventory.NewClassifier(30), 5)
}

func keys(rows []dto.GroupRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key)
	}
	return out
}

func names(rows []dto.AlertRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestSpend_AgrupaPorAreaConPorcentajes(t *testing.T) {
	rep := newAssembler().Spend(buildSnapshot(), report.Request{Period: inventory.PeriodLast7Days}, testNow)

	assert.Equal(t, report.GroupByArea, rep.GroupedBy)
	require.Len(t, rep.Groups, 2)
	assert.Equal(t, "Box 1", rep.Groups[0].Key)
	assert.Equal(t, 2, rep.Groups[0].Count)
	assertDec(t, "2500", rep.Groups[0].ValueSum, "el total guardado 9999 no se usa")
	assertDec(t, "71.43", rep.Groups[0].Percentage)
	assert.Equal(t, "Box 2", rep.Groups[1].Key)
	assertDec(t, "1000", rep.Groups[1].ValueSum)
	assertDec(t, "28.57", rep.Groups[1].Percentage)
	assertDec(t, "3500", rep.PeriodTotal)
}

func TestSpend_TotalDelMesIndependienteDelPeriodo(t *testing.T) {
	a := newAssembler()
	snap := buildSnapshot()

	all := a.Spend(snap, report.Request{Period: inventory.PeriodAllTime}, testNow)
	assertDec(t, "4500", all.PeriodTotal)
	assertDec(t, "3500", all.MonthTotal, "la compra de febrero no cuenta en el mes")

	today := a.Spend(snap, report.Request{Period: inventory.PeriodToday}, testNow)
	assert.True(t, today.PeriodTotal.IsZero())
	assert.Empty(t, today.Groups)
	assertDec(t, "3500", today.MonthTotal)
}

func TestSpend_RangoDeFechas(t *testing.T) {
	since, until := date(time.March, 10), date(time.March, 12)
	rep := newAssembler().Spend(buildSnapshot(), report.Request{Since: &since, Until: &until}, testNow)

	assert.Equal(t, "custom", rep.Period)
	assert.Equal(t, 2, rep.Records)
	assertDec(t, "1500", rep.PeriodTotal)
}

func TestSpend_AlcanceRestringidoAgrupaPorProducto(t *testing.T) {
	req := report.Request{Scope: inventory.Scope{RestrictArea: "Box 1"}, Period: inventory.PeriodAllTime}
	rep := newAssembler().Spend(buildSnapshot(), req, testNow)

	assert.Equal(t, "Box 1", rep.Area)
	assert.Equal(t, report.GroupByProduct, rep.GroupedBy)
	assert.Equal(t, []string{"Guantes de nitrilo M", "Composite A2"}, keys(rep.Groups), "usa el nombre vigente del catálogo")
	assertDec(t, "2500", rep.PeriodTotal)
}

func TestSpend_AlcanceSeAplicaAntesQueElArea(t *testing.T) {
	req := report.Request{Scope: inventory.Scope{RestrictArea: "Box 1"}, Area: "Box 2"}
	rep := newAssembler().Spend(buildSnapshot(), req, testNow)

	assert.Empty(t, rep.Groups)
	assert.True(t, rep.PeriodTotal.IsZero())
	assert.True(t, rep.MonthTotal.IsZero())
}

func TestSpend_CompraHuerfanaUsaNombreGuardado(t *testing.T) {
	rep := newAssembler().Spend(buildSnapshot(), report.Request{Area: "Box 2"}, testNow)

	// ambos suman 1000: el empate conserva el orden de aparición
	assert.Equal(t, []string{"Eyector desechable", "Guantes de nitrilo M"}, keys(rep.Groups))
}

func TestSpend_Top(t *testing.T) {
	rep := newAssembler().Spend(buildSnapshot(), report.Request{Top: 1}, testNow)

	require.Len(t, rep.Groups, 1)
	assert.Equal(t, "Box 1", rep.Groups[0].Key)
	assertDec(t, "55.56", rep.Groups[0].Percentage, "el porcentaje es sobre el total, no sobre el top")
}

func TestConsumption(t *testing.T) {
	rep := newAssembler().Consumption(buildSnapshot(), report.Request{Period: inventory.PeriodToday}, testNow)

	assert.Equal(t, "consumption", rep.Kind)
	assert.Equal(t, []string{"Box 2"}, keys(rep.Groups))
	assertDec(t, "50", rep.PeriodTotal)
	assertDec(t, "150", rep.MonthTotal)
}

func TestStock_OrdenadoPorCantidad(t *testing.T) {
	rep := newAssembler().Stock(buildSnapshot(), report.Request{}, testNow)

	assert.Equal(t, []string{"Composite A2", "Guantes de nitrilo M", "Eyectores"}, names(rep.Items))
	assert.Equal(t, 1, rep.OutOfStock)
	assert.Equal(t, 3, rep.LowStock)
	assert.Equal(t, []string{"LOW_STOCK", "OUT_OF_STOCK", "EXPIRING_SOON"}, rep.Items[0].Alerts)
}

func TestExpiration_VencidosPrimero(t *testing.T) {
	rep := newAssembler().Expiration(buildSnapshot(), report.Request{}, testNow)

	assert.Equal(t, []string{"Anestesia lidocaína", "Algodón", "Composite A2"}, names(rep.Items))
	assert.Equal(t, 1, rep.Expired)
	assert.Equal(t, 2, rep.ExpiringSoon)
	assert.Equal(t, 30, rep.HorizonDays)
	require.NotNil(t, rep.Items[0].DaysToExpire)
	assert.Equal(t, -14, *rep.Items[0].DaysToExpire)
	assert.True(t, rep.Items[0].RequiresRefrigeration)
}

func TestExpiration_AlcanceRestringido(t *testing.T) {
	req := report.Request{Scope: inventory.Scope{RestrictArea: "Box 1"}}
	rep := newAssembler().Expiration(buildSnapshot(), req, testNow)

	assert.Equal(t, []string{"Composite A2"}, names(rep.Items))
}

func TestSummary(t *testing.T) {
	rep := newAssembler().Summary(buildSnapshot(), report.Request{}, testNow)

	assert.Equal(t, 5, rep.Products)
	assertDec(t, "21800", rep.StockValue)
	assert.Equal(t, 3, rep.LowStock)
	assert.Equal(t, 1, rep.OutOfStock)
	assert.Equal(t, 1, rep.Expired)
	assert.Equal(t, 2, rep.ExpiringSoon)
	assert.Equal(t, 2, rep.RequiresRefrigeration)
	assert.Equal(t, 1, rep.PendingReturns)
	assert.Equal(t, 2, rep.OpenOrders)
	assertDec(t, "4500", rep.SpendPeriod)
	assertDec(t, "3500", rep.SpendMonth)
	assert.Equal(t, []string{"Box 1", "Box 2"}, keys(rep.TopSpend))
	assert.Equal(t, report.GroupByArea, rep.TopSpendGroupedBy)
}

func TestSummary_AlcanceRestringidoInformaAgrupacionPorProducto(t *testing.T) {
	req := report.Request{Scope: inventory.Scope{RestrictArea: "Box 1"}}
	rep := newAssembler().Summary(buildSnapshot(), req, testNow)

	assert.Equal(t, report.GroupByProduct, rep.TopSpendGroupedBy)
	assert.NotContains(t, keys(rep.TopSpend), "Box 1")
	assert.NotContains(t, keys(rep.TopSpend), "Box 2")
}

func TestAssembler_SnapshotVacia(t *testing.T) {
	a := newAssembler()
	snap := &repository.Snapshot{}

	stock := a.Stock(snap, report.Request{}, testNow)
	assert.NotNil(t, stock.Items)
	assert.Empty(t, stock.Items)

	spend := a.Spend(snap, report.Request{}, testNow)
	assert.Empty(t, spend.Groups)
	assert.True(t, spend.PeriodTotal.IsZero())
	assert.True(t, spend.MonthTotal.IsZero())
}
