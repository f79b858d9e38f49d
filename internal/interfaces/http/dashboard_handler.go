package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ceramic-erp/internal/application/analytics"
	"github.com/jhoicas/ceramic-erp/internal/domain/authz"
)

// DashboardHandler maneja el panel principal.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve el resumen del negocio.
// GET /api/dashboard
//
// Las cifras financieras (ingresos, costo, utilidad, caja, cartera y posición)
// solo se incluyen si el token tiene view_dashboard_financial.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	financial := GetPermissions(c).Has(authz.ViewDashboardFinancial)
	out, err := h.uc.Get(c.UserContext(), financial)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
