package labels

import (
	"context"

	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

// MintTxRunner ejecuta la secuencia leer-máximo-insertar de la asignación de
// seriales dentro de una transacción de BD. El render de la hoja queda FUERA
// de esa transacción: un render lento o fallido no retiene el lock del
// prefijo ni revierte los seriales ya confirmados.
type MintTxRunner interface {
	RunMint(ctx context.Context, fn func(
		barcodeRepo repository.BarcodeRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// SymbolOptions opciones de rasterizado de un símbolo Code 128.
type SymbolOptions struct {
	WidthPx  int
	HeightPx int
	// Scaled false omite el escalado y produce el símbolo al ancho de módulo
	// crudo (modo de respaldo, menor fidelidad).
	Scaled bool
}

// SymbolRasterizer es el colaborador externo que convierte texto en la imagen
// PNG del símbolo. Se invoca una vez por código.
type SymbolRasterizer interface {
	Rasterize(value string, opts SymbolOptions) ([]byte, error)
}

// LabelCell contenido de una celda de la hoja de rótulos: símbolo + las
// cuatro líneas de texto (SKU, nombre, cantidad de caja, serial).
type LabelCell struct {
	BarcodeValue string
	SKU          string
	ProductName  string
	BoxQuantity  int
	Symbol       []byte
}

// SheetRenderer arma la hoja A4 paginada a partir de las celdas, en el mismo
// orden de entrada (orden de impresión = serial ascendente).
type SheetRenderer interface {
	RenderSheet(ctx context.Context, cells []LabelCell) ([]byte, error)
}
