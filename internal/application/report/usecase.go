package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	appinventory "github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/repository"
)

// Tipos de reporte expuestos.
const (
	KindStock       = "stock"
	KindExpiration  = "vencimientos"
	KindSpend       = "gastos"
	KindConsumption = "consumo"
	KindSummary     = "resumen"
)

// UseCase carga la Snapshot del almacenamiento en uso y delega en el Assembler.
type UseCase struct {
	loader    repository.SnapshotLoader
	assembler *Assembler
	pdf       PDFGenerator
	clock     appinventory.Clock
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewUseCase(loader repository.SnapshotLoader, assembler *Assembler, pdf PDFGenerator, clock appinventory.Clock, log zerolog.Logger) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{loader: loader, assembler: assembler, pdf: pdf, clock: clock, log: log}
}

// NewRequest valida la selección del query string contra el alcance del usuario.
// Un asistente no puede pedir un área distinta de la suya.
func (uc *UseCase) NewRequest(scope inventory.Scope, q dto.ReportQuery) (Request, error) {
	c, err := appinventory.PeriodCriteria(dto.PeriodQuery{Period: q.Period, Since: q.Since, Until: q.Until}, uc.clock().Location())
	if err != nil {
		return Request{}, err
	}
	if q.Area != "" && !scope.Allows(q.Area) {
		return Request{}, domain.ErrForbidden
	}
	return Request{Scope: scope, Area: q.Area, Period: c.Period, Since: c.Since, Until: c.Until, Top: q.Top}, nil
}

// Stock reporte de stock bajo y agotado.
func (uc *UseCase) Stock(ctx context.Context, req Request) (*dto.StockReport, error) {
	snap, now, err := uc.load(ctx, KindStock)
	if err != nil {
		return nil, err
	}
	rep := uc.assembler.Stock(snap, req, now)
	return &rep, nil
}

// Expiration reporte de vencimientos.
func (uc *UseCase) Expiration(ctx context.Context, req Request) (*dto.ExpirationReport, error) {
	snap, now, err := uc.load(ctx, KindExpiration)
	if err != nil {
		return nil, err
	}
	rep := uc.assembler.Expiration(snap, req, now)
	return &rep, nil
}

// Spend reporte de gastos.
func (uc *UseCase) Spend(ctx context.Context, req Request) (*dto.MovementReport, error) {
	snap, now, err := uc.load(ctx, KindSpend)
	if err != nil {
		return nil, err
	}
	rep := uc.assembler.Spend(snap, req, now)
	return &rep, nil
}

// Consumption reporte de consumo.
func (uc *UseCase) Consumption(ctx context.Context, req Request) (*dto.MovementReport, error) {
	snap, now, err := uc.load(ctx, KindConsumption)
	if err != nil {
		return nil, err
	}
	rep := uc.assembler.Consumption(snap, req, now)
	return &rep, nil
}

// Summary resumen del panel.
func (uc *UseCase) Summary(ctx context.Context, req Request) (*dto.SummaryReport, error) {
	snap, now, err := uc.load(ctx, KindSummary)
	if err != nil {
		return nil, err
	}
	rep := uc.assembler.Summary(snap, req, now)
	return &rep, nil
}

// PDF genera el reporte indicado y lo exporta. Devuelve el contenido y un nombre de archivo sugerido.
func (uc *UseCase) PDF(ctx context.Context, kind string, req Request) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("exportación PDF no configurada")
	}
	snap, now, err := uc.load(ctx, kind)
	if err != nil {
		return nil, "", err
	}

	var table Table
	switch kind {
	case KindStock:
		table = StockTable(uc.assembler.Stock(snap, req, now))
	case KindExpiration:
		table = ExpirationTable(uc.assembler.Expiration(snap, req, now))
	case KindSpend:
		table = MovementTable("Reporte de gastos", uc.assembler.Spend(snap, req, now))
	case KindConsumption:
		table = MovementTable("Reporte de consumo", uc.assembler.Consumption(snap, req, now))
	case KindSummary:
		table = SummaryTable(uc.assembler.Summary(snap, req, now))
	default:
		return nil, "", fmt.Errorf("reporte %q: %w", kind, domain.ErrNotFound)
	}

	b, err := uc.pdf.Generate(table)
	if err != nil {
		uc.log.Error().Err(err).Str("report", kind).Msg("error generando PDF")
		return nil, "", fmt.Errorf("generar PDF %s: %w", kind, err)
	}
	name := fmt.Sprintf("reporte-%s-%s.pdf", kind, now.Format("20060102"))
	return b, name, nil
}

func (uc *UseCase) load(ctx context.Context, kind string) (*repository.Snapshot, time.Time, error) {
	start := time.Now()
	snap, err := uc.loader.LoadSnapshot(ctx)
	if err != nil {
		uc.log.Error().Err(err).Str("report", kind).Msg("error cargando datos del reporte")
		return nil, time.Time{}, fmt.Errorf("cargar snapshot: %w", err)
	}
	uc.log.Debug().
		Str("report", kind).
		Int("products", len(snap.Products)).
		Int("purchases", len(snap.Purchases)).
		Int("usage", len(snap.Usage)).
		Dur("load", time.Since(start)).
		Msg("snapshot cargada")
	return snap, uc.clock(), nil
}
