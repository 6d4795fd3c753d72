// Package barcode implementa el rasterizador de símbolos Code 128 que consume
// el render de rótulos: texto → bytes PNG. No valida simbología más allá de
// lo que el encoder acepte; longitud y charset del serial se validan antes.
package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"

	"github.com/jhoicas/Custodia-api/internal/application/labels"
)

var _ labels.SymbolRasterizer = (*Code128Rasterizer)(nil)

// Code128Rasterizer genera símbolos Code 128 como PNG.
type Code128Rasterizer struct{}

// NewCode128Rasterizer construye el rasterizador.
func NewCode128Rasterizer() *Code128Rasterizer {
	return &Code128Rasterizer{}
}

// Rasterize codifica value como Code 128 y lo escala al tamaño pedido.
// Con opts.Scaled en false se omite el escalado y el símbolo sale al ancho
// de módulo crudo (modo de respaldo, menor fidelidad de impresión).
func (c *Code128Rasterizer) Rasterize(value string, opts labels.SymbolOptions) ([]byte, error) {
	symbol, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("encode code128 %q: %w", value, err)
	}

	var img bc.Barcode = symbol
	if opts.Scaled {
		scaled, err := bc.Scale(symbol, opts.WidthPx, opts.HeightPx)
		if err != nil {
			return nil, fmt.Errorf("scale code128 %q a %dx%d: %w", value, opts.WidthPx, opts.HeightPx, err)
		}
		img = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode %q: %w", value, err)
	}
	return buf.Bytes(), nil
}
