package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/application/inventory"
)

// MovementHandler compras y consumos (protegido).
type MovementHandler struct {
	purchases *inventory.PurchaseUseCase
	usage     *inventory.UsageUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(purchases *inventory.PurchaseUseCase, usage *inventory.UsageUseCase) *MovementHandler {
	return &MovementHandler{purchases: purchases, usage: usage}
}

// RegisterPurchase godoc
// @Summary      Registrar compra
// @Description  Suma stock al producto y recalcula su precio promedio ponderado.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPurchaseRequest  true  "product_id, quantity, unit_price"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *MovementHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.purchases.Register(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today, last-7-days, last-30-days, all-time"
// @Param        since   query  string  false  "YYYY-MM-DD"
// @Param        until   query  string  false  "YYYY-MM-DD"
// @Param        area    query  string  false  "Área"
// @Success      200     {object}  dto.MovementListResponse[dto.PurchaseResponse]
// @Router       /api/compras [get]
func (h *MovementHandler) ListPurchases(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.purchases.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeletePurchase godoc
// @Summary      Eliminar compra
// @Description  Revierte la cantidad en el producto sin bajar de cero.
// @Tags         compras
// @Security     Bearer
// @Param        id   path  string  true  "ID de la compra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [delete]
func (h *MovementHandler) DeletePurchase(c *fiber.Ctx) error {
	if err := h.purchases.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterUsage godoc
// @Summary      Registrar consumo
// @Tags         consumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUsageRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.UsageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumos [post]
func (h *MovementHandler) RegisterUsage(c *fiber.Ctx) error {
	var in dto.RegisterUsageRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.usage.Register(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsage godoc
// @Summary      Listar consumos
// @Tags         consumos
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "today, last-7-days, last-30-days, all-time"
// @Param        area    query  string  false  "Área"
// @Success      200     {object}  dto.MovementListResponse[dto.UsageResponse]
// @Router       /api/consumos [get]
func (h *MovementHandler) ListUsage(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.usage.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
