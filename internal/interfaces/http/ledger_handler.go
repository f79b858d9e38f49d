package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	appledger "github.com/jhoicas/ceramic-erp/internal/application/ledger"
)

// LedgerHandler estado de cuenta por empresa y sus descargas.
type LedgerHandler struct {
	uc *appledger.StatementUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *appledger.StatementUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Get godoc
// @Summary      Estado de cuenta de una empresa
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        enterpriseName  query  string  true   "Cliente o proveedor (sin distinguir mayúsculas)"
// @Param        fromDate        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        toDate          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.StatementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Query("enterpriseName"), c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Descargar estado de cuenta en CSV
// @Tags         ledger
// @Security     Bearer
// @Produce      text/csv
// @Param        enterpriseName  query  string  true   "Cliente o proveedor"
// @Param        fromDate        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        toDate          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/export [get]
func (h *LedgerHandler) ExportCSV(c *fiber.Ctx) error {
	file, err := h.uc.ExportCSV(c.UserContext(), c.Query("enterpriseName"), c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

// ExportPDF godoc
// @Summary      Descargar estado de cuenta en PDF
// @Tags         ledger
// @Security     Bearer
// @Produce      application/pdf
// @Param        enterpriseName  query  string  true   "Cliente o proveedor"
// @Param        fromDate        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        toDate          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger/export/pdf [get]
func (h *LedgerHandler) ExportPDF(c *fiber.Ctx) error {
	file, err := h.uc.ExportPDF(c.UserContext(), c.Query("enterpriseName"), c.Query("fromDate"), c.Query("toDate"))
	if errors.Is(err, appledger.ErrPDFUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: err.Error()})
	}
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *appledger.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Send(file.Content)
}
