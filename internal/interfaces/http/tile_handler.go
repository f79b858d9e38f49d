package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ceramic-erp/internal/application/analytics"
	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
)

// TileHandler maneja las peticiones HTTP de baldosas (protegido).
type TileHandler struct {
	uc      *usecase.TileUseCase
	reports *appanalytics.ReportUseCase
}

// NewTileHandler construye el handler.
func NewTileHandler(uc *usecase.TileUseCase, reports *appanalytics.ReportUseCase) *TileHandler {
	return &TileHandler{uc: uc, reports: reports}
}

// List godoc
// @Summary      Listar baldosas activas con totales de inventario
// @Tags         tiles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TileListResponse
// @Router       /api/tiles [get]
func (h *TileHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear baldosa
// @Tags         tiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTileRequest  true  "Datos de la baldosa"
// @Success      201   {object}  dto.TileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tiles [post]
func (h *TileHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Details godoc
// @Summary      Detalle de baldosa con ventas y compras del rango
// @Tags         tiles
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID de la baldosa"
// @Param        fromDate  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        toDate    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.TileDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tiles/{id} [get]
func (h *TileHandler) Details(c *fiber.Ctx) error {
	out, err := h.reports.TileDetails(c.UserContext(), c.Params("id"), c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar baldosa (el stock solo cambia con ventas y compras)
// @Tags         tiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la baldosa"
// @Param        body  body  dto.UpdateTileRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tiles/{id} [put]
func (h *TileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar baldosa (borrado lógico)
// @Tags         tiles
// @Security     Bearer
// @Param        id   path  string  true  "ID de la baldosa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tiles/{id} [delete]
func (h *TileHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
