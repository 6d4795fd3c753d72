package entity

import "time"

// Tipos de transacción de inventario.
const (
	TxTypeCheckout = "CHECKOUT" // entrega en custodia
	TxTypeReturn   = "RETURN"   // devolución
	TxTypeUse      = "USE"      // consumo sin transferencia de custodia
)

// InventoryTransaction es una entrada del libro mayor (append-only): una vez
// escrita nunca se modifica ni se borra. Es la fuente de verdad; el estado del
// código de barras y la asignación por empleado son proyecciones derivadas.
type InventoryTransaction struct {
	ID          string
	Type        string // CHECKOUT | RETURN | USE
	CheckoutQty int
	ReturnedQty int
	UsedQty     int
	Remarks     string
	BarcodeID   string
	ProductID   string
	EmployeeID  string
	CreatedAt   time.Time
}
