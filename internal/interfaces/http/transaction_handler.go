package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Custodia-api/internal/application/custody"
	"github.com/jhoicas/Custodia-api/internal/application/dto"
	"github.com/jhoicas/Custodia-api/internal/domain"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

// TransactionHandler maneja el registro y consulta del libro mayor de custodia.
type TransactionHandler struct {
	record  *custody.RecordTransactionUseCase
	history *custody.HistoryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(record *custody.RecordTransactionUseCase, history *custody.HistoryUseCase) *TransactionHandler {
	return &TransactionHandler{record: record, history: history}
}

// Record godoc
// @Summary      Registrar un movimiento de custodia
// @Description  CHECKOUT, RETURN o USE sobre un código (por barcode_value o serial). Atómico: estado, ventana, asignación y libro mayor cambian juntos.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "movimiento"
// @Success      201   {object}  dto.RecordTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.record.RecordTransaction(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Consultar el libro mayor
// @Description  Historial del más reciente al más antiguo, con filtros exactos opcionales.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "filtrar por empleado"
// @Param        product_id   query  string  false  "filtrar por producto"
// @Param        type         query  string  false  "CHECKOUT | RETURN | USE"
// @Param        limit        query  int     false  "por defecto 20"
// @Param        offset       query  int     false  "por defecto 0"
// @Success      200  {array}   dto.TransactionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.TransactionFilter{
		EmployeeID: c.Query("employee_id"),
		ProductID:  c.Query("product_id"),
		Type:       c.Query("type"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	out, err := h.history.ListTransactions(c.Context(), filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// mapDomainError traduce errores de dominio a códigos HTTP. Compartido por los
// handlers del paquete.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
