package custody

import (
	"context"

	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que todos los efectos de una
// transacción de custodia (entrada en el libro mayor, estado del código,
// ventana de entrega y asignación) se confirmen o se reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		barcodeRepo repository.BarcodeRepository,
		ledgerRepo repository.InventoryTransactionRepository,
		checkoutRepo repository.BarcodeCheckoutRepository,
		allocationRepo repository.AllocationRepository,
		employeeRepo repository.EmployeeRepository,
		productRepo repository.ProductRepository,
	) error) error
}
