package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Custodia-api/internal/application/dto"
	"github.com/jhoicas/Custodia-api/internal/application/labels"
)

// PrefixHandler maneja la lista blanca de prefijos de serial.
type PrefixHandler struct {
	prefixes *labels.PrefixUseCase
}

// NewPrefixHandler construye el handler.
func NewPrefixHandler(prefixes *labels.PrefixUseCase) *PrefixHandler {
	return &PrefixHandler{prefixes: prefixes}
}

// List godoc
// @Summary      Listar los prefijos habilitados
// @Description  Devuelve los prefijos por defecto y los agregados por supervisores.
// @Tags         prefixes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PrefixListResponse
// @Router       /api/prefixes [get]
func (h *PrefixHandler) List(c *fiber.Ctx) error {
	out, err := h.prefixes.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar un prefijo a la lista blanca
// @Description  Solo supervisores. Duplicados (por defecto o ya agregados) responden 409.
// @Tags         prefixes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddPrefixRequest  true  "code: 2-4 letras mayúsculas"
// @Success      201  {object}  dto.AddPrefixRequest
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prefixes [post]
func (h *PrefixHandler) Add(c *fiber.Ctx) error {
	var in dto.AddPrefixRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	code := strings.TrimSpace(in.Code)
	if err := h.prefixes.Add(c.Context(), code); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddPrefixRequest{Code: code})
}
