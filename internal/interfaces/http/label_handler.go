package http

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Custodia-api/internal/application/dto"
	"github.com/jhoicas/Custodia-api/internal/application/labels"
	"github.com/jhoicas/Custodia-api/internal/domain"
)

// LabelHandler maneja la impresión y reimpresión de lotes de rótulos (protegido).
type LabelHandler struct {
	mint      *labels.MintLabelsUseCase
	outputDir string
}

// NewLabelHandler construye el handler. outputDir recibe las hojas generadas.
func NewLabelHandler(mint *labels.MintLabelsUseCase, outputDir string) *LabelHandler {
	return &LabelHandler{mint: mint, outputDir: outputDir}
}

// Mint godoc
// @Summary      Imprimir un lote de rótulos
// @Description  Reserva count seriales contiguos del prefijo y genera la hoja A4.
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MintLabelsRequest  true  "product_id, count (1..100), prefix opcional (2-4 mayúsculas)"
// @Success      201   {object}  dto.MintLabelsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.RenderFailureResponse  "render fallido; los seriales quedan asignados"
// @Router       /api/labels/mint [post]
func (h *LabelHandler) Mint(c *fiber.Ctx) error {
	var in dto.MintLabelsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.mint.MintLabels(c.Context(), in)
	if err != nil {
		return h.mintError(c, out, err)
	}
	file, err := h.writeSheet(out.Sheet)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MintLabelsResponse{
		GeneratedFile: file,
		CreatedCount:  len(out.Barcodes),
		Barcodes:      out.Barcodes,
	})
}

// Render godoc
// @Summary      Reimprimir la hoja de un lote existente
// @Description  Reintento tras falla de render: lee los códigos ya asignados y regenera la hoja.
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RenderLabelsRequest  true  "barcode_values del lote"
// @Success      201   {object}  dto.MintLabelsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.RenderFailureResponse  "render fallido; el lote sigue asignado"
// @Router       /api/labels/render [post]
func (h *LabelHandler) Render(c *fiber.Ctx) error {
	var in dto.RenderLabelsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.mint.RenderExisting(c.Context(), in.BarcodeValues)
	if err != nil {
		return h.mintError(c, out, err)
	}
	file, err := h.writeSheet(out.Sheet)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MintLabelsResponse{
		GeneratedFile: file,
		CreatedCount:  len(out.Barcodes),
		Barcodes:      out.Barcodes,
	})
}

// mintError mapea errores del caso de uso. Una falla de render devuelve 502
// CON los códigos ya asignados: el caller reintenta solo el render.
func (h *LabelHandler) mintError(c *fiber.Ctx, out *labels.MintOutput, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote inválido: count fuera de [1,100] o prefijo malformado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o código no encontrado"})
	case errors.Is(err, domain.ErrRenderFailed):
		body := dto.RenderFailureResponse{Code: "RENDER_FAILED", Message: err.Error()}
		if out != nil {
			body.Barcodes = out.Barcodes
		}
		return c.Status(fiber.StatusBadGateway).JSON(body)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// writeSheet persiste la hoja en el directorio configurado y devuelve la ruta.
func (h *LabelHandler) writeSheet(sheet []byte) (string, error) {
	if err := os.MkdirAll(h.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de salida: %w", err)
	}
	name := fmt.Sprintf("labels_%s.pdf", time.Now().Format("20060102_150405.000"))
	path := filepath.Join(h.outputDir, name)
	if err := os.WriteFile(path, sheet, 0o644); err != nil {
		return "", fmt.Errorf("escribir hoja: %w", err)
	}
	return path, nil
}
