package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ceramic-erp/internal/application/billing"
	"github.com/jhoicas/ceramic-erp/internal/application/dto"
)

// SaleHandler maneja el registro y listado de ventas (protegido).
type SaleHandler struct {
	record *billing.RecordSaleUseCase
	list   *billing.ListSalesUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(record *billing.RecordSaleUseCase, list *billing.ListSalesUseCase) *SaleHandler {
	return &SaleHandler{record: record, list: list}
}

// Create godoc
// @Summary      Registrar venta de una línea
// @Description  Descuenta stock y acredita a caja lo cobrado, todo en una transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Cliente, baldosa, cantidad y pago"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
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
// @Summary      Listar ventas con totales globales
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.list.List(c.UserContext(), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
