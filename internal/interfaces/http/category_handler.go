package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ceramic-erp/internal/application/analytics"
	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP de categorías (protegido).
type CategoryHandler struct {
	uc      *usecase.CategoryUseCase
	reports *appanalytics.ReportUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, reports *appanalytics.ReportUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc, reports: reports}
}

// List godoc
// @Summary      Listar categorías con su resumen de inventario
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategorySummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.reports.CategoryIndex(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
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
// @Summary      Detalle de categoría con ventas y compras del rango
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID de la categoría"
// @Param        fromDate  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        toDate    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.CategoryDetailsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Details(c *fiber.Ctx) error {
	out, err := h.reports.CategoryDetails(c.UserContext(), c.Params("id"), c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría sin baldosas
// @Tags         categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
