package labels

import (
	"fmt"

	"github.com/jhoicas/Custodia-api/internal/domain"
)

// SymbolStrategy encapsula el esquema primario-con-respaldo del rasterizado:
// un intento con las opciones primarias y, si falla, exactamente un intento
// de respaldo con fidelidad reducida. Si ambos fallan, el lote completo de
// render aborta (no hay hojas parciales).
type SymbolStrategy struct {
	rasterizer SymbolRasterizer
	primary    SymbolOptions
	fallback   SymbolOptions
}

// NewSymbolStrategy construye la estrategia.
func NewSymbolStrategy(rasterizer SymbolRasterizer, primary, fallback SymbolOptions) *SymbolStrategy {
	return &SymbolStrategy{rasterizer: rasterizer, primary: primary, fallback: fallback}
}

// Render devuelve los bytes PNG del símbolo para value.
func (s *SymbolStrategy) Render(value string) ([]byte, error) {
	img, primaryErr := s.rasterizer.Rasterize(value, s.primary)
	if primaryErr == nil {
		return img, nil
	}
	img, fallbackErr := s.rasterizer.Rasterize(value, s.fallback)
	if fallbackErr == nil {
		return img, nil
	}
	return nil, fmt.Errorf("símbolo %q: primario (%v) y respaldo (%v): %w",
		value, primaryErr, fallbackErr, domain.ErrRenderFailed)
}
