package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/application/inventory"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// DocumentHandler devoluciones o pedidos a proveedores; la ruta decide cuál caso de uso recibe.
type DocumentHandler struct {
	uc *inventory.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *inventory.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear devolución o pedido
// @Description  Las devoluciones descuentan stock al crearse; los pedidos no.
// @Tags         devoluciones, pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "supplier_id, items"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devoluciones [post]
// @Router       /api/pedidos [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener devolución o pedido
// @Tags         devoluciones, pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devoluciones/{id} [get]
// @Router       /api/pedidos/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar devoluciones o pedidos
// @Tags         devoluciones, pedidos
// @Security     Bearer
// @Produce      json
// @Param        period    query  string  false  "today, last-7-days, last-30-days, all-time"
// @Param        status    query  string  false  "Estado"
// @Param        supplier  query  string  false  "Proveedor"
// @Success      200       {array}  dto.DocumentResponse
// @Router       /api/devoluciones [get]
// @Router       /api/pedidos [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var q dto.DocumentQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Description  Repetir una transición ya aplicada responde 200 con applied=false y no toca el stock.
// @Tags         devoluciones, pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.ChangeStatusRequest  true  "status"
// @Success      200   {object}  dto.StatusChangeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devoluciones/{id}/estado [patch]
// @Router       /api/pedidos/{id}/estado [patch]
func (h *DocumentHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetActor(c), c.Params("id"), entity.Status(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
