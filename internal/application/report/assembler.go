// Package report arma los reportes de inventario a partir de una Snapshot:
// filtros, agregación y alertas del dominio, sin I/O.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

// Agrupaciones de los reportes de movimientos.
const (
	GroupByArea    = "area"
	GroupByProduct = "product"
)

// Request selección del usuario para un reporte.
// Scope es la restricción impuesta por el rol y se aplica antes que todo lo demás;
// Area es el área elegida en pantalla.
type Request struct {
	Scope  inventory.Scope
	Area   string
	Period inventory.Period
	Since  *time.Time
	Until  *time.Time
	Top    int // 0 = todos los grupos
}

// groupBy por producto cuando se mira una sola área.
func (r Request) groupBy() string {
	if r.Area != "" || r.Scope.Restricted() {
		return GroupByProduct
	}
	return GroupByArea
}

func (r Request) areaLabel() string {
	if r.Scope.Restricted() {
		return r.Scope.RestrictArea
	}
	return r.Area
}

func (r Request) periodCriteria() inventory.Criteria {
	return inventory.Criteria{Period: r.Period, Since: r.Since, Until: r.Until}
}

func (r Request) periodLabel() string {
	if r.Since != nil || r.Until != nil {
		return "custom"
	}
	if r.Period == "" {
		return string(inventory.PeriodAllTime)
	}
	return string(r.Period)
}

// Assembler combina filtro, agregador y clasificador. Es puro: mismo input, mismo output.
type Assembler struct {
	classifier *inventory.Classifier
	topN       int
}

// NewAssembler construye el ensamblador; topN es el largo del ranking del resumen.
func NewAssembler(classifier *inventory.Classifier, topN int) *Assembler {
	if topN <= 0 {
		topN = 10
	}
	return &Assembler{classifier: classifier, topN: topN}
}

// products aplica alcance y luego el área elegida.
func (a *Assembler) products(snap *repository.Snapshot, req Request) []entity.Product {
	scoped := inventory.Scoped(snap.Products, req.Scope)
	return inventory.Filter(scoped, areaCriteria(req.Area), time.Time{})
}

// Stock productos con LOW_STOCK u OUT_OF_STOCK, de menor a mayor cantidad.
func (a *Assembler) Stock(snap *repository.Snapshot, req Request, now time.Time) dto.StockReport {
	rep := dto.StockReport{GeneratedAt: now, Area: req.areaLabel(), Items: []dto.AlertRow{}}
	for _, p := range a.products(snap, req) {
		alerts := a.classifier.Classify(now, p)
		if !alerts.Any(inventory.LowStock | inventory.OutOfStock) {
			continue
		}
		if alerts.Has(inventory.OutOfStock) {
			rep.OutOfStock++
		}
		if alerts.Has(inventory.LowStock) {
			rep.LowStock++
		}
		rep.Items = append(rep.Items, a.alertRow(p, alerts, now))
	}
	sort.SliceStable(rep.Items, func(i, j int) bool {
		return rep.Items[i].Quantity < rep.Items[j].Quantity
	})
	return rep
}

// Expiration vencidos primero y luego por vencer; dentro de cada grupo por fecha ascendente.
func (a *Assembler) Expiration(snap *repository.Snapshot, req Request, now time.Time) dto.ExpirationReport {
	rep := dto.ExpirationReport{
		GeneratedAt: now,
		Area:        req.areaLabel(),
		HorizonDays: a.classifier.HorizonDays(),
		Items:       []dto.AlertRow{},
	}
	for _, p := range a.products(snap, req) {
		alerts := a.classifier.Classify(now, p)
		switch {
		case alerts.Has(inventory.Expired):
			rep.Expired++
		case alerts.Has(inventory.ExpiringSoon):
			rep.ExpiringSoon++
		default:
			continue
		}
		rep.Items = append(rep.Items, a.alertRow(p, alerts, now))
	}
	sort.SliceStable(rep.Items, func(i, j int) bool {
		ei := containsAlert(rep.Items[i].Alerts, "EXPIRED")
		ej := containsAlert(rep.Items[j].Alerts, "EXPIRED")
		if ei != ej {
			return ei
		}
		return rep.Items[i].ExpirationDate.Before(*rep.Items[j].ExpirationDate)
	})
	return rep
}

// Spend gastos: compras del período agrupadas, más el total del mes calendario en curso.
func (a *Assembler) Spend(snap *repository.Snapshot, req Request, now time.Time) dto.MovementReport {
	names := productNames(snap)
	return movementReport("spend", snap.Purchases, req, now, func(p entity.Purchase) string {
		return productKey(names, p.ProductID, p.ProductName)
	})
}

// Consumption consumo: mismo cálculo que Spend sobre los consumos.
func (a *Assembler) Consumption(snap *repository.Snapshot, req Request, now time.Time) dto.MovementReport {
	names := productNames(snap)
	return movementReport("consumption", snap.Usage, req, now, func(u entity.UsageEntry) string {
		return productKey(names, u.ProductID, u.ProductName)
	})
}

// Summary totales del panel principal.
func (a *Assembler) Summary(snap *repository.Snapshot, req Request, now time.Time) dto.SummaryReport {
	rep := dto.SummaryReport{GeneratedAt: now, Area: req.areaLabel(), StockValue: decimal.Zero}
	for _, p := range a.products(snap, req) {
		rep.Products++
		rep.StockValue = rep.StockValue.Add(p.StockValue())
		alerts := a.classifier.Classify(now, p)
		if alerts.Has(inventory.LowStock) {
			rep.LowStock++
		}
		if alerts.Has(inventory.OutOfStock) {
			rep.OutOfStock++
		}
		if alerts.Has(inventory.Expired) {
			rep.Expired++
		}
		if alerts.Has(inventory.ExpiringSoon) {
			rep.ExpiringSoon++
		}
		if a.classifier.RequiresRefrigeration(p) {
			rep.RequiresRefrigeration++
		}
	}

	area := areaCriteria(req.Area)
	for _, r := range inventory.Filter(inventory.Scoped(snap.Returns, req.Scope), area, now) {
		if r.Status == entity.StatusPending {
			rep.PendingReturns++
		}
	}
	for _, o := range inventory.Filter(inventory.Scoped(snap.Orders, req.Scope), area, now) {
		if o.Status == entity.StatusPending || o.Status == entity.StatusSent {
			rep.OpenOrders++
		}
	}

	topReq := req
	topReq.Top = a.topN
	spend := a.Spend(snap, topReq, now)
	consumption := a.Consumption(snap, req, now)
	rep.SpendPeriod, rep.SpendMonth = spend.PeriodTotal, spend.MonthTotal
	rep.ConsumptionPeriod, rep.ConsumptionMonth = consumption.PeriodTotal, consumption.MonthTotal
	rep.TopSpend, rep.TopSpendGroupedBy = spend.Groups, spend.GroupedBy
	return rep
}

// movementReport alcance → área elegida → (total del mes) → período → agregación.
func movementReport[T interface {
	inventory.Record
	inventory.Measurable
}](kind string, records []T, req Request, now time.Time, product func(T) string) dto.MovementReport {
	inArea := inventory.Filter(inventory.Scoped(records, req.Scope), areaCriteria(req.Area), now)

	month := inventory.Filter(inArea, monthCriteria(now), now)
	period := inventory.Filter(inArea, req.periodCriteria(), now)

	key := func(r T) string { return r.TextField(entity.FieldArea) }
	groupedBy := req.groupBy()
	if groupedBy == GroupByProduct {
		key = product
	}
	agg := inventory.GroupBy(period, key)

	groups := agg.Sorted()
	if req.Top > 0 {
		groups = agg.Top(req.Top)
	}
	rows := make([]dto.GroupRow, 0, len(groups))
	for _, s := range agg.Shares(groups) {
		rows = append(rows, dto.GroupRow{
			Key:         s.Key,
			Count:       s.Count,
			QuantitySum: s.QuantitySum,
			ValueSum:    s.ValueSum,
			Percentage:  s.Percentage,
		})
	}

	return dto.MovementReport{
		GeneratedAt:   now,
		Kind:          kind,
		Period:        req.periodLabel(),
		Since:         req.Since,
		Until:         req.Until,
		Area:          req.areaLabel(),
		GroupedBy:     groupedBy,
		Records:       len(period),
		TotalQuantity: agg.TotalQuantity(),
		PeriodTotal:   agg.Total(),
		MonthTotal:    inventory.Sum(month),
		Groups:        rows,
	}
}

func (a *Assembler) alertRow(p entity.Product, alerts inventory.AlertSet, now time.Time) dto.AlertRow {
	row := dto.AlertRow{
		ProductID:             p.ID,
		Name:                  p.Name,
		Category:              p.Category,
		Area:                  p.Area,
		Quantity:              p.Quantity,
		MinStock:              p.MinStock,
		UnitPrice:             p.UnitPrice,
		ExpirationDate:        p.ExpirationDate,
		RequiresRefrigeration: a.classifier.RequiresRefrigeration(p),
		Alerts:                alerts.Names(),
	}
	if days, ok := a.classifier.DaysUntilExpiration(now, p); ok {
		row.DaysToExpire = &days
	}
	return row
}

func areaCriteria(area string) inventory.Criteria {
	return inventory.Criteria{Equals: []inventory.EqualsClause{{Field: entity.FieldArea, Value: area}}}
}

// monthCriteria mes calendario completo de now, independiente del período elegido.
func monthCriteria(now time.Time) inventory.Criteria {
	since := inventory.StartOfMonth(now)
	until := since.AddDate(0, 1, -1)
	return inventory.Criteria{Since: &since, Until: &until}
}

func productNames(snap *repository.Snapshot) map[string]string {
	names := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		names[p.ID] = p.Name
	}
	return names
}

// productKey nombre vigente del catálogo; si el producto fue eliminado, el nombre guardado en el registro.
func productKey(names map[string]string, id, stored string) string {
	if name, ok := names[id]; ok && id != "" {
		return name
	}
	if stored != "" {
		return stored
	}
	if id != "" {
		return id
	}
	return "(sin producto)"
}

func containsAlert(alerts []string, name string) bool {
	for _, a := range alerts {
		if a == name {
			return true
		}
	}
	return false
}
