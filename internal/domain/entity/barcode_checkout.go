package entity

import "time"

// BarcodeCheckout es la ventana abierta/cerrada de cada entrega física: se
// abre en CHECKOUT y se cierra (IsReturned + ReturnTime) al procesar el
// RETURN correspondiente. Un código puede acumular varias ventanas cerradas.
type BarcodeCheckout struct {
	ID         string
	BarcodeID  string
	EmployeeID string
	IsReturned bool
	ReturnTime *time.Time
	CreatedAt  time.Time
}
