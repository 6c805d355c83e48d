package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/application/report"
)

// ReportHandler reportes del motor de agregación (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte del inventario
// @Description  tipo: stock, vencimientos, gastos, consumo o resumen. Un asistente solo ve su área.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        tipo    path   string  true   "stock | vencimientos | gastos | consumo | resumen"
// @Param        period  query  string  false  "today, last-7-days, last-30-days, all-time"
// @Param        since   query  string  false  "YYYY-MM-DD"
// @Param        until   query  string  false  "YYYY-MM-DD"
// @Param        area    query  string  false  "Área"
// @Param        top     query  int     false  "Grupos a mostrar"
// @Success      200     {object}  dto.MovementReport
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/reportes/{tipo} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	req, ok, err := h.request(c)
	if !ok {
		return err
	}
	ctx := c.UserContext()
	var out any
	switch c.Params("tipo") {
	case report.KindStock:
		out, err = h.uc.Stock(ctx, req)
	case report.KindExpiration:
		out, err = h.uc.Expiration(ctx, req)
	case report.KindSpend:
		out, err = h.uc.Spend(ctx, req)
	case report.KindConsumption:
		out, err = h.uc.Consumption(ctx, req)
	case report.KindSummary:
		out, err = h.uc.Summary(ctx, req)
	default:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de reporte desconocido"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Exportar reporte a PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        tipo  path  string  true  "stock | vencimientos | gastos | consumo | resumen"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reportes/{tipo}/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	req, ok, err := h.request(c)
	if !ok {
		return err
	}
	content, filename, err := h.uc.PDF(c.UserContext(), c.Params("tipo"), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

func (h *ReportHandler) request(c *fiber.Ctx) (report.Request, bool, error) {
	var q dto.ReportQuery
	if ok, err := bindQuery(c, &q); !ok {
		return report.Request{}, false, err
	}
	req, err := h.uc.NewRequest(GetActor(c).Scope, q)
	if err != nil {
		return report.Request{}, false, writeError(c, err)
	}
	return req, true, nil
}
