package repository

import "github.com/jhoicas/Custodia-api/internal/domain/entity"

// TransactionFilter filtros de listado del libro mayor. Campos vacíos no
// filtran; el orden de salida es siempre del más reciente al más antiguo.
type TransactionFilter struct {
	EmployeeID string
	ProductID  string
	Type       string
	Limit      int
	Offset     int
}

// InventoryTransactionRepository define el puerto del libro mayor append-only.
// Deliberadamente no expone Update ni Delete: una entrada escrita es inmutable.
type InventoryTransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	List(filter TransactionFilter) ([]*entity.InventoryTransaction, error)
}
