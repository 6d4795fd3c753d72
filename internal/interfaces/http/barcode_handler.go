package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Custodia-api/internal/application/custody"
)

// BarcodeHandler maneja la consulta de códigos y asignaciones vigentes.
type BarcodeHandler struct {
	history *custody.HistoryUseCase
}

// NewBarcodeHandler construye el handler.
func NewBarcodeHandler(history *custody.HistoryUseCase) *BarcodeHandler {
	return &BarcodeHandler{history: history}
}

// Lookup godoc
// @Summary      Consultar un código de barras
// @Description  Resuelve por barcode_value o serial_number (primero gana el valor exacto).
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        value  path  string  true  "barcode_value o serial_number"
// @Success      200  {object}  dto.BarcodeLookupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/barcodes/{value} [get]
func (h *BarcodeHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.history.LookupBarcode(c.Context(), c.Params("value"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// GetAllocation godoc
// @Summary      Consultar la asignación vigente de un par (empleado, producto)
// @Description  La ausencia de fila se reporta como cero unidades, no como 404.
// @Tags         barcodes
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  true  "empleado"
// @Param        product_id   query  string  true  "producto"
// @Success      200  {object}  dto.AllocationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/allocations [get]
func (h *BarcodeHandler) GetAllocation(c *fiber.Ctx) error {
	out, err := h.history.GetAllocation(c.Context(), c.Query("employee_id"), c.Query("product_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
