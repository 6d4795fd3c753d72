package dto

import "time"

// RecordTransactionRequest body para POST /api/inventory/transactions.
// Solo la cantidad del tipo indicado se tiene en cuenta; cantidades en cero o
// ausentes caen al respaldo de la cantidad de caja guardada en el código.
type RecordTransactionRequest struct {
	BarcodeValue string `json:"barcode_value"`
	Type         string `json:"type"` // CHECKOUT | RETURN | USE
	CheckoutQty  int    `json:"checkout_qty,omitempty"`
	ReturnedQty  int    `json:"returned_qty,omitempty"`
	UsedQty      int    `json:"used_qty,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
	EmployeeID   string `json:"employee_id"`
}

// TransactionDTO una entrada del libro mayor.
type TransactionDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	CheckoutQty int       `json:"checkout_qty"`
	ReturnedQty int       `json:"returned_qty"`
	UsedQty     int       `json:"used_qty"`
	Remarks     string    `json:"remarks,omitempty"`
	BarcodeID   string    `json:"barcode_id"`
	ProductID   string    `json:"product_id"`
	EmployeeID  string    `json:"employee_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordTransactionResponse entrada creada + resúmenes denormalizados.
type RecordTransactionResponse struct {
	Transaction TransactionDTO     `json:"transaction"`
	Barcode     BarcodeDTO         `json:"barcode"`
	Product     ProductSummaryDTO  `json:"product"`
	Employee    EmployeeSummaryDTO `json:"employee"`
}

// EmployeeSummaryDTO resumen denormalizado de empleado.
type EmployeeSummaryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllocationDTO asignación vigente de un par (empleado, producto).
type AllocationDTO struct {
	EmployeeID     string `json:"employee_id"`
	ProductID      string `json:"product_id"`
	AllocatedUnits int    `json:"allocated_units"`
}
