// Package pdf implementa la hoja de rótulos de códigos de barras con Maroto v2.
//
// Layout de la página A4 (grilla fija de 3 columnas, sin reflow):
//
//	┌───────────────┬───────────────┬───────────────┐
//	│  [símbolo]    │  [símbolo]    │  [símbolo]    │
//	│  SKU          │  SKU          │  SKU          │
//	│  Nombre       │  Nombre       │  Nombre       │
//	│  Cant. caja   │  Cant. caja   │  Cant. caja   │
//	│  Serial       │  Serial       │  Serial       │
//	├───────────────┼───────────────┼───────────────┤
//	│  ...filas hasta llenar la altura útil...      │
//	└───────────────┴───────────────┴───────────────┘
//
// El orden de las celdas es el de entrada (orden de impresión = serial
// ascendente); el salto de página lo maneja la paginación de Maroto cuando la
// siguiente fila no cabe en la altura útil.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Custodia-api/internal/application/labels"
)

// Dimensiones en mm. 39mm de fila ≈ 110pt; 17mm de símbolo ≈ 48pt.
const (
	labelRowHeight   = 39
	labelColumns     = 3
	symbolImgPercent = 88 // deja ~6pt de aire por lado dentro de la columna
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

var _ labels.SheetRenderer = (*MarotoLabelSheet)(nil)

// MarotoLabelSheet implementa labels.SheetRenderer usando Maroto v2.
type MarotoLabelSheet struct{}

// NewMarotoLabelSheet construye el renderer.
func NewMarotoLabelSheet() *MarotoLabelSheet {
	return &MarotoLabelSheet{}
}

// RenderSheet genera el PDF de la hoja de rótulos y devuelve sus bytes.
func (g *MarotoLabelSheet) RenderSheet(_ context.Context, cells []labels.LabelCell) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Hoja de rótulos", true).
		Build()

	m := maroto.New(cfg)

	for start := 0; start < len(cells); start += labelColumns {
		end := start + labelColumns
		if end > len(cells) {
			end = len(cells)
		}
		m.AddRows(labelRow(cells[start:end]))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de rótulos: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRow arma una fila de hasta 3 celdas; las posiciones sobrantes de la
// última fila quedan como columnas vacías para no deformar la grilla.
func labelRow(cells []labels.LabelCell) core.Row {
	r := row.New(labelRowHeight)
	for _, c := range cells {
		r.Add(labelCol(c))
	}
	for i := len(cells); i < labelColumns; i++ {
		r.Add(col.New(4))
	}
	return r
}

// labelCol: símbolo arriba y las cuatro líneas de texto debajo, siempre en el
// mismo orden (SKU, nombre, cantidad de caja, serial).
func labelCol(c labels.LabelCell) core.Col {
	return col.New(4).Add(
		image.NewFromBytes(c.Symbol, extension.Png, props.Rect{
			Center:  true,
			Percent: symbolImgPercent,
			Top:     1,
		}),
		text.New(c.SKU, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 20, Left: 2,
		}),
		text.New(c.ProductName, props.Text{
			Size: 7, Top: 24, Left: 2,
		}),
		text.New(fmt.Sprintf("Cant. caja: %d", c.BoxQuantity), props.Text{
			Size: 7, Top: 28, Left: 2, Color: colorGray,
		}),
		text.New(c.BarcodeValue, props.Text{
			Size: 7, Top: 32, Left: 2, Color: colorGray,
		}),
	)
}
