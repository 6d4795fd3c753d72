package entity

import "time"

// Estados de custodia de un código de barras.
const (
	BarcodeStatusAvailable  = "AVAILABLE"
	BarcodeStatusCheckedOut = "CHECKED_OUT"
)

// Barcode es el registro durable de cada serial impreso. BarcodeValue es único
// e inmutable; SerialNumber duplica el valor al momento de la impresión.
// BoxQuantity es un snapshot del producto al imprimir: NO se recalcula después,
// así los rótulos históricos siguen siendo correctos aunque cambie la caja.
type Barcode struct {
	ID           string
	BarcodeValue string // prefijo + ordinal con ceros (ancho 6), ej. BX000007
	SerialNumber string // igual a BarcodeValue al crear
	ProductID    string
	BoxQuantity  int
	Status       string // AVAILABLE | CHECKED_OUT
	CreatedAt    time.Time
}
