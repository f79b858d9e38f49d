package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/purchasing"
)

// PurchaseHandler maneja el registro y listado de compras (protegido).
type PurchaseHandler struct {
	record *purchasing.RecordPurchaseUseCase
	list   *purchasing.ListPurchasesUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(record *purchasing.RecordPurchaseUseCase, list *purchasing.ListPurchasesUseCase) *PurchaseHandler {
	return &PurchaseHandler{record: record, list: list}
}

// Create godoc
// @Summary      Registrar compra de una línea
// @Description  Suma stock a la baldosa. No mueve la caja.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Proveedor, baldosa, cantidad y pago"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.record.Execute(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar compras con totales globales
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.list.List(c.UserContext(), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
